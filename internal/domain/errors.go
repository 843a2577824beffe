package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindInvalidTransition  ErrorKind = "INVALID_TRANSITION"
	KindInsufficientFunds  ErrorKind = "INSUFFICIENT_FUNDS"
	KindServiceUnavailable ErrorKind = "SERVICE_UNAVAILABLE"
	KindValidation         ErrorKind = "VALIDATION_ERROR"
	KindConflict           ErrorKind = "CONCURRENCY_CONFLICT"
	KindDependency         ErrorKind = "DEPENDENCY_FAILURE"
)

// Error is the only error shape the settlement core returns to callers.
// Reason is machine-oriented; the API layer owns human-facing text.
type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewNotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Reason: fmt.Sprintf("%s %s not found", entity, id)}
}

func NewInvalidTransition(from, to OrderStatus) *Error {
	return &Error{Kind: KindInvalidTransition, Reason: fmt.Sprintf("order status %s cannot move to %s", from, to)}
}

func NewInsufficientFunds(walletID string, need Money) *Error {
	return &Error{Kind: KindInsufficientFunds, Reason: fmt.Sprintf("wallet %s cannot cover %d", walletID, need)}
}

func NewServiceUnavailable(reason string) *Error {
	return &Error{Kind: KindServiceUnavailable, Reason: reason}
}

func NewValidation(reason string) *Error {
	return &Error{Kind: KindValidation, Reason: reason}
}

func NewConflict(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

func NewDependency(op string, err error) *Error {
	return &Error{Kind: KindDependency, Reason: op, Err: err}
}

// KindOf extracts the error kind, or "" for non-domain errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
