package service

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
)

// ErrNotFound is the sentinel matched by errors.Is for any NotFoundError.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input. It is returned before any state
// is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an operation referencing an entity that does not
// exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConsistencyError reports a transaction whose account no longer exists.
// Recalculation collects these into its report instead of aborting.
type ConsistencyError struct {
	AccountID     uuid.UUID
	TransactionID uuid.UUID
	Reason        string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("transaction %s references account %s: %s", e.TransactionID, e.AccountID, e.Reason)
}

// TransferIntegrityError reports a transfer whose second leg could not be
// written. RolledBack tells whether the compensating delete of the first leg
// succeeded; when false the source account needs recalculation.
type TransferIntegrityError struct {
	TransferID uuid.UUID
	Cause      error
	RolledBack bool
}

func (e *TransferIntegrityError) Error() string {
	if e.RolledBack {
		return fmt.Sprintf("transfer %s: second leg failed, first leg rolled back: %v", e.TransferID, e.Cause)
	}
	return fmt.Sprintf("transfer %s: second leg failed and rollback failed: %v", e.TransferID, e.Cause)
}

func (e *TransferIntegrityError) Unwrap() error {
	return e.Cause
}
