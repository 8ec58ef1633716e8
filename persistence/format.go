package persistence

import (
	"errors"
	"fmt"
)

const (
	// DefaultModelName is the blob name models are saved under.
	DefaultModelName = "model.bin"

	// BackupSuffix is appended to rotated model backups.
	BackupSuffix = ".bak"
)

var (
	// ErrCorruptModel indicates a truncated or malformed model blob.
	ErrCorruptModel = errors.New("corrupt model file")
)

// ErrFormatMismatch indicates that a persisted model's dimensionality does
// not match the configured dimensionality. It is a soft failure: the
// target store is left unpopulated and the host process continues.
type ErrFormatMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrFormatMismatch) Error() string {
	return fmt.Sprintf("model dimensionality mismatch: expected %d, got %d", e.Expected, e.Actual)
}
