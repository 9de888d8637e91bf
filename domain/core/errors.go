package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Table shape errors
	ErrRaggedTable     = errors.New("table columns have unequal lengths")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrEmptyTable      = errors.New("table has no columns")

	// Schema construction faults. These indicate a programming or
	// configuration error and fail fast at build time; they are never
	// produced while validating data.
	ErrBadPattern    = errors.New("invalid validator pattern")
	ErrBadDateLayout = errors.New("invalid date layout")
	ErrBadRange      = errors.New("invalid range bounds")
	ErrNoValidators  = errors.New("column rule has no validators")

	// Configuration errors
	ErrConfigInvalid = errors.New("invalid configuration")
)

// NewConfigError wraps a schema construction fault with the offending
// column or parameter for context.
func NewConfigError(subject string, err error) error {
	return fmt.Errorf("%s: %w", subject, err)
}

// IsConfigFault reports whether an error stems from validator or schema
// construction rather than from the data being validated.
func IsConfigFault(err error) bool {
	return errors.Is(err, ErrBadPattern) ||
		errors.Is(err, ErrBadDateLayout) ||
		errors.Is(err, ErrBadRange) ||
		errors.Is(err, ErrNoValidators)
}

// IsTableFault reports whether an error stems from a malformed input
// table (ragged columns, duplicate names).
func IsTableFault(err error) bool {
	return errors.Is(err, ErrRaggedTable) ||
		errors.Is(err, ErrDuplicateColumn) ||
		errors.Is(err, ErrEmptyTable)
}
