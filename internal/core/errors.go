package core

import "errors"

var (
	// ErrValidation matches every input validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an identifier does not match any record.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a rejected field. All values satisfy
// errors.Is(err, ErrValidation).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

var (
	ErrEmptyName            = invalid("name", "cannot be empty")
	ErrEmptyLocation        = invalid("location", "cannot be empty")
	ErrEmptyPhone           = invalid("phone", "cannot be empty")
	ErrEmptyTenantName      = invalid("tenant_name", "cannot be empty")
	ErrEmptyTransactionCode = invalid("transaction_code", "cannot be empty")
	ErrEmptyTitle           = invalid("title", "cannot be empty")
	ErrEmptyPropertyName    = invalid("property_name", "cannot be empty")
	ErrEmptyDescription     = invalid("description", "cannot be empty")
	ErrEmptyCategory        = invalid("category", "cannot be empty")
	ErrEmptyID              = invalid("id", "cannot be empty")
	ErrInvalidAmount        = invalid("amount", "must be a positive whole number")
	ErrInvalidBillType      = invalid("type", "unknown bill type")
	ErrInvalidDate          = invalid("date", "must be a valid YYYY-MM-DD date")
	ErrMissingDueDate       = invalid("due_date", "is required")
	ErrUnitOccupied         = invalid("unit", "already has a tenant")
	ErrMissingPeriod        = invalid("period", "start and end dates are required")
	ErrInvalidPeriod        = invalid("period", "start date must not be after end date")
)

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
