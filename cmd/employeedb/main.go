package main

import (
	"os"

	"github.com/willfong/employeedb/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
