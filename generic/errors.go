/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Data integrity - snapshots the engine must refuse to compute on
  2. Validation - malformed input caught at the edit boundary
  3. Lookup - records that do not exist

USAGE:
    if errors.Is(err, generic.ErrDataIntegrity) {
        // surface to an administrator, do not default to zero
    }

SEE ALSO:
  - worktime/contract.go: Raises DataIntegrityError
  - store/sqlite/sqlite.go: Raises ErrEmployeeNotFound, ErrDuplicateContract
  - api/handlers.go: Maps errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDataIntegrity marks snapshots the engine cannot compute on.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrEmptyContractHistory is returned when an employee has no contract
	// records. A zero contract is never substituted.
	ErrEmptyContractHistory = errors.New("empty contract history")

	// ErrDuplicateContract is returned when two contract records share a
	// valid-from date.
	ErrDuplicateContract = errors.New("duplicate contract valid_from")

	// ErrInvalidPeriod is returned when a range is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidInput is returned for field-level validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition is returned for absence status changes other than
	// pending → approved|rejected.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRecordNotFound is returned for missing entries, absences and adjustments.
	ErrRecordNotFound = errors.New("record not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DataIntegrityError names the employee whose snapshot is unusable.
type DataIntegrityError struct {
	EmployeeID string
	Reason     string
	Err        error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity violation for employee %s: %s", e.EmployeeID, e.Reason)
}

// Is makes errors.Is(err, ErrDataIntegrity) hold for every DataIntegrityError.
func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

// FieldError is a validation failure on a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateContract) ||
		errors.Is(err, ErrInvalidTransition)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}

// IsDataIntegrity returns true if the stored data itself is inconsistent.
func IsDataIntegrity(err error) bool {
	return errors.Is(err, ErrDataIntegrity)
}
