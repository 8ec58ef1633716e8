package wordvec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/wordvec/blobstore"
	"github.com/hupe1980/wordvec/persistence"
	"github.com/hupe1980/wordvec/search"
)

var (
	// ErrNotFound is returned when a word, model blob, or corpus file is
	// not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrIndexDisabled is returned by corpus search when the store was
	// built without IndexCorpus.
	ErrIndexDisabled = errors.New("corpus indexing not enabled")
)

// ErrDimensionMismatch indicates that a persisted model's dimensionality
// does not match the store's configured dimensionality. The store is left
// unpopulated; callers typically log and continue with a fresh model.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates an invalid configured dimensionality.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Dimension and argument normalization.
	var fm *persistence.ErrFormatMismatch
	if errors.As(err, &fm) {
		return &ErrDimensionMismatch{Expected: fm.Expected, Actual: fm.Actual, cause: err}
	}
	if errors.Is(err, search.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	return err
}
