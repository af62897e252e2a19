package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the route layer can map them to a status.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
	KindConflict     ErrorKind = "conflict"
	KindPrecondition ErrorKind = "precondition"
	KindCollaborator ErrorKind = "collaborator"
)

// AppError is the single error type crossing the service boundary.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Field   string
	Message string
	Meta    map[string]string
	Err     error
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by kind and code, so sentinel values work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func NewValidationError(field, reason string) error {
	return &AppError{Kind: KindValidation, Code: "invalid_input", Field: field, Message: reason}
}

func NewNotFoundError(resource, id string) error {
	return &AppError{
		Kind:    KindNotFound,
		Code:    resource + "_not_found",
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

func NewForbiddenError(msg string) error {
	return &AppError{Kind: KindForbidden, Code: "forbidden", Message: msg}
}

func NewConflictError(code, msg string) error {
	return &AppError{Kind: KindConflict, Code: code, Message: msg}
}

func NewPreconditionError(code, msg string) error {
	return &AppError{Kind: KindPrecondition, Code: code, Message: msg}
}

func NewCollaboratorError(op string, err error) error {
	return &AppError{Kind: KindCollaborator, Code: "storage_failure", Message: op, Err: err}
}

// Sentinels for errors.Is checks.
var (
	ErrSlotTaken           = &AppError{Kind: KindConflict, Code: "slot_taken"}
	ErrCascadeBreachesDay  = &AppError{Kind: KindConflict, Code: "cascade_exceeds_working_hours"}
	ErrProviderBusy        = &AppError{Kind: KindConflict, Code: "provider_busy"}
	ErrInvalidDay          = &AppError{Kind: KindValidation, Code: "invalid_day"}
	ErrOutsideWorkingHours = &AppError{Kind: KindValidation, Code: "outside_working_hours"}
	ErrBookingNotActive    = &AppError{Kind: KindPrecondition, Code: "booking_not_active"}
	ErrScheduleMissing     = &AppError{Kind: KindPrecondition, Code: "schedule_missing"}
	ErrInvalidTransition   = &AppError{Kind: KindConflict, Code: "invalid_status_transition"}
	ErrBookingChanged      = &AppError{Kind: KindConflict, Code: "booking_changed"}
)

// With returns a copy of e carrying a message and optional meta.
func (e *AppError) With(msg string, meta map[string]string) error {
	out := *e
	out.Message = msg
	out.Meta = meta
	return &out
}

// KindOf returns the kind of err, or "" when err is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
