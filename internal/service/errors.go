package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// Error kinds.  Every error returned by this package matches at least one of
// them under errors.Is.  A ValidationError matches the kind of each field
// error it holds.
var (
	ErrInvalidField       = errors.New("invalid field")
	ErrInvalidRange       = errors.New("invalid time range")
	ErrScheduleConflict   = errors.New("schedule conflict")
	ErrStorageUnavailable = errors.New("booking storage is unavailable")
	ErrStorageFailed      = errors.New("booking storage failed")
)

// FieldError reports one rejected input field.  Kind is ErrInvalidField or
// ErrInvalidRange.
type FieldError struct {
	Field   string
	Kind    error
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return e.Kind }

// Code is the machine-readable kind used in API responses.
func (e *FieldError) Code() string {
	if errors.Is(e.Kind, ErrInvalidRange) {
		return "INVALID_RANGE"
	}
	return "INVALID_FIELD"
}

func invalidField(field, msg string) *FieldError {
	return &FieldError{Field: field, Kind: ErrInvalidField, Message: msg}
}

func invalidRange(field, msg string) *FieldError {
	return &FieldError{Field: field, Kind: ErrInvalidRange, Message: msg}
}

// ValidationError carries every field failure of one submission.  Under the
// FirstFailure policy it holds exactly one.
type ValidationError struct {
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, fe := range e.Errors {
		errs = append(errs, fe)
	}
	return errs
}

// ConflictError names the stored booking that overlaps the candidate.
type ConflictError struct {
	Existing model.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflicts with %s (%s-%s)", e.Existing.Name, e.Existing.Start, e.Existing.End)
}

func (e *ConflictError) Unwrap() error { return ErrScheduleConflict }

// StorageError wraps a failure of the booking store.  Error() only exposes
// the operation and the kind; the driver error stays reachable through
// errors.Is/As for logging.
type StorageError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s booking: %v", e.Op, e.Kind)
}

func (e *StorageError) Unwrap() []error { return []error{e.Kind, e.Err} }

func unavailable(op string, err error) *StorageError {
	return &StorageError{Op: op, Kind: ErrStorageUnavailable, Err: err}
}

func failed(op string, err error) *StorageError {
	return &StorageError{Op: op, Kind: ErrStorageFailed, Err: err}
}
