// Package apperror is the error taxonomy shared by the services. Every
// error a service returns is either an *Error or wraps one.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindValidation         Kind = "validation"
	KindActiveCreditExists Kind = "active_credit_exists"
	KindInsufficientFunds  Kind = "insufficient_funds"
	KindInvalidTransition  Kind = "invalid_transition"
	KindConflict           Kind = "conflict"
	KindPersistence        Kind = "persistence"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind and code so that errors.Is works against the
// sentinels below even after With/Wrap produced a copy.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

// With returns a copy of e carrying a more specific message.
func (e *Error) With(format string, args ...any) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

var (
	ErrActiveCreditExists = &Error{Kind: KindActiveCreditExists, Code: "ACTIVE_CREDIT_EXISTS", Message: "member already holds an outstanding credit"}
	ErrInsufficientFunds  = &Error{Kind: KindInsufficientFunds, Code: "INSUFFICIENT_FUNDS", Message: "insufficient funds in tontine"}

	ErrCreditNotFound  = &Error{Kind: KindNotFound, Code: "CREDIT_NOT_FOUND", Message: "credit not found"}
	ErrProjectNotFound = &Error{Kind: KindNotFound, Code: "PROJECT_NOT_FOUND", Message: "project not found"}
	ErrSessionNotFound = &Error{Kind: KindNotFound, Code: "SESSION_NOT_FOUND", Message: "session not found"}
	ErrMemberNotFound  = &Error{Kind: KindNotFound, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
	ErrTontineNotFound = &Error{Kind: KindNotFound, Code: "TONTINE_NOT_FOUND", Message: "tontine not found"}
	ErrPenaltyNotFound = &Error{Kind: KindNotFound, Code: "PENALTY_NOT_FOUND", Message: "penalty not found"}
	ErrTourNotFound    = &Error{Kind: KindNotFound, Code: "TOUR_NOT_FOUND", Message: "tour not found"}

	// Kind-only sentinels for errors.Is checks.
	ErrValidation        = &Error{Kind: KindValidation}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrPersistence       = &Error{Kind: KindPersistence}
)

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: fmt.Sprintf(format, args...)}
}

// ValidationFields carries per-field messages, keyed by json field name.
func ValidationFields(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message, Fields: fields}
}

func InvalidTransition(entity, from, event string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Code:    "INVALID_TRANSITION",
		Message: fmt.Sprintf("%s cannot %s from status %q", entity, event, from),
	}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Code: "CONFLICT", Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a driver failure; the driver message is kept verbatim.
func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Code: "PERSISTENCE_ERROR", Message: "persistence error", Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
