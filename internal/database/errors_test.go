package database

import (
	"errors"
	"strings"
	"testing"
)

func TestOpError(t *testing.T) {
	cause := errors.New("server closed the connection")
	err := error(NewOpError(ErrBulkLoadFailed, "copy", cause))

	if !errors.Is(err, ErrBulkLoadFailed) {
		t.Error("expected kind to match")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to match")
	}
	if errors.Is(err, ErrInsertFailed) {
		t.Error("unexpected kind match")
	}

	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != "copy" {
		t.Errorf("errors.As failed: %v", err)
	}

	msg := err.Error()
	if !strings.Contains(msg, "bulk load failed") || !strings.Contains(msg, "copy") || !strings.Contains(msg, cause.Error()) {
		t.Errorf("Error() = %q", msg)
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection", NewOpError(ErrConnection, "connect", errors.New("refused")), true},
		{"bulk load", NewOpError(ErrBulkLoadFailed, "copy", errors.New("x")), false},
		{"insert", NewOpError(ErrInsertFailed, "insert", errors.New("x")), false},
		{"purge", NewOpError(ErrPurgeFailed, "delete", errors.New("x")), false},
		{"plain", errors.New("x"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal = %v, want %v", got, tt.want)
			}
		})
	}
}
