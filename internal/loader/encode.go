package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/willfong/employeedb/internal/models"
)

// approxRowBytes is a per-record size estimate used to presize buffers
const approxRowBytes = 40

// EncodeEmployees writes employees in the bulk transfer format: one
// "full_name,birth_date,gender" line per record, no header. Fields holding
// commas, quotes or newlines are quoted (RFC 4180) so columns stay aligned.
func EncodeEmployees(w io.Writer, employees []models.Employee) (int, error) {
	buffer := bufio.NewWriterSize(w, 64*1024)
	writer := csv.NewWriter(buffer)

	row := make([]string, 3)
	for i, e := range employees {
		row[0] = e.FullName
		row[1] = e.BirthDateString()
		row[2] = string(e.Gender)
		if err := writer.Write(row); err != nil {
			return i, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return len(employees), fmt.Errorf("csv flush error: %w", err)
	}
	if err := buffer.Flush(); err != nil {
		return len(employees), fmt.Errorf("buffer flush error: %w", err)
	}
	return len(employees), nil
}
