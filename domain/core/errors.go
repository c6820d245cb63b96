package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural input errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrNilDataset       = fmt.Errorf("%w: dataset is nil", ErrInvalidInput)
	ErrNoColumns        = fmt.Errorf("%w: dataset has no columns", ErrInvalidInput)
	ErrDuplicateColumn  = fmt.Errorf("%w: duplicate column name", ErrInvalidInput)
	ErrEmptyColumnName  = fmt.Errorf("%w: empty column name", ErrInvalidInput)
	ErrRowCountMismatch = fmt.Errorf("%w: column length does not match row count", ErrInvalidInput)
	ErrTargetNotFound   = fmt.Errorf("%w: target column not found", ErrInvalidInput)

	// Format errors raised by readers and renderers
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Error constructors with context
func NewColumnError(base error, column string) error {
	return fmt.Errorf("%w: %q", base, column)
}

func NewRowCountError(column string, got, want int) error {
	return fmt.Errorf("%w: column %q has %d values, dataset has %d rows", ErrRowCountMismatch, column, got, want)
}

func NewUnsupportedFormatError(format string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// IsInvalidInput reports whether err is a structural input failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
