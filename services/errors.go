package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation_error"
	KindUnauthorized Kind = "unauthorized"
	KindPersistence  Kind = "persistence_error"
)

// Error is the tagged failure every service operation returns.
// Transport maps Kind to a status code.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNoQuery means search was called without a term; no search was performed.
var ErrNoQuery = errors.New("no search term")

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "storage failure", Err: err}
}

// KindOf returns the error's kind, or "" for errors that did not come from a service.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func isMissing(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// storeErr converts a repository error, mapping a missing row to NotFound.
func storeErr(err error, what string, id uint) error {
	if isMissing(err) {
		return NotFound("%s %d does not exist", what, id)
	}
	return Persistence(err)
}
