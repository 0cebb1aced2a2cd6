package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	KindStorage Kind = iota
	KindValidation
	KindBusinessRule
	KindNotFound
)

// Error is the error type returned by application services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports missing or malformed input.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// BusinessRule reports a request that is well-formed but not allowed in the current state.
func BusinessRule(msg string) error {
	return &Error{Kind: KindBusinessRule, Message: msg}
}

// NotFound reports an id that does not resolve.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Storage wraps an unexpected engine failure. Already classified errors pass through.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindStorage, Message: "Internal Server Error", Err: err}
}

// KindOf returns the kind of err; unclassified errors are storage errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

// HTTPStatus maps err to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindBusinessRule:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
