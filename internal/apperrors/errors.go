package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPersistence indicates that the storage layer failed to read or write a record.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code and a human message alongside the
// underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel that corresponds to the status code.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusBadRequest:
		return target == ErrValidation
	case http.StatusConflict:
		return target == ErrDuplicate
	case http.StatusInternalServerError:
		return target == ErrPersistence
	}
	return false
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError matching ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

// NewValidationError returns an AppError matching ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// PairPersistenceError reports a storage failure for one currency pair during
// reconciliation.
type PairPersistenceError struct {
	Pair string
	Err  error
}

func (e *PairPersistenceError) Error() string {
	return fmt.Sprintf("error processing FXQL pair %s: %v", e.Pair, e.Err)
}

func (e *PairPersistenceError) Unwrap() error {
	return e.Err
}

// FailedPairs walks err (including errors.Join trees) and returns the pair of
// every PairPersistenceError found, in tree order.
func FailedPairs(err error) []string {
	var pairs []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if pe, ok := e.(*PairPersistenceError); ok {
			pairs = append(pairs, pe.Pair)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return pairs
}
