package error

import (
	"errors"
	"strings"
)

// Ledger domain errors.
var (
	// ErrMissingName is returned when a required name field is blank.
	ErrMissingName = errors.New("name is required")

	// ErrNonPositiveAmount is returned when an amount that must be positive is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// ErrNegativeAmount is returned when an amount cell is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMonth is returned when a month key is malformed.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidPeriod is returned when a period id is outside 1..5.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidSemesterRange is returned when a semester starts after it ends.
	ErrInvalidSemesterRange = errors.New("semester start must not be after end")

	// ErrDuplicateName is returned when a category, platform or portfolio name already exists.
	ErrDuplicateName = errors.New("name already exists")

	// ErrLastSemester is returned when deleting the only remaining semester.
	ErrLastSemester = errors.New("cannot delete the last semester")

	// ErrSemesterNotFound is returned when a semester id does not exist.
	ErrSemesterNotFound = errors.New("semester not found")

	// ErrNoSemesters is returned when a view needs a semester and the user has none.
	ErrNoSemesters = errors.New("no semesters defined")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LED-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingName          LedgerErrorCode = "LED-010001"
	ErrCodeNonPositiveAmount    LedgerErrorCode = "LED-010002"
	ErrCodeNegativeAmount       LedgerErrorCode = "LED-010003"
	ErrCodeInvalidDate          LedgerErrorCode = "LED-010004"
	ErrCodeInvalidMonth         LedgerErrorCode = "LED-010005"
	ErrCodeInvalidPeriod        LedgerErrorCode = "LED-010006"
	ErrCodeInvalidSemesterRange LedgerErrorCode = "LED-010007"
	ErrCodeLastSemester         LedgerErrorCode = "LED-010008"
	ErrCodeInvalidRequest       LedgerErrorCode = "LED-010009"

	// Not found errors (02XXXX)
	ErrCodeSemesterNotFound LedgerErrorCode = "LED-020001"
	ErrCodeNoSemesters      LedgerErrorCode = "LED-020002"

	// Conflict errors (03XXXX)
	ErrCodeDuplicateName LedgerErrorCode = "LED-030001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether the error is an input validation failure.
func (e *LedgerError) IsValidation() bool {
	return strings.HasPrefix(string(e.Code), "LED-01")
}

// IsNotFound reports whether the error refers to a missing resource.
func (e *LedgerError) IsNotFound() bool {
	return strings.HasPrefix(string(e.Code), "LED-02")
}

// IsConflict reports whether the error is a uniqueness conflict.
func (e *LedgerError) IsConflict() bool {
	return strings.HasPrefix(string(e.Code), "LED-03")
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
