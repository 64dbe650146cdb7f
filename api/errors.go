// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the memsentry library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrInvalidAlignment  = fmt.Errorf("alignment must be a power of two")
	ErrCapacityOverflow  = fmt.Errorf("capacity computation overflows")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrResourceExhausted = fmt.Errorf("resource exhausted")
	ErrPoolInvalid       = fmt.Errorf("ring pool failed construction")
	ErrPoolClosed        = fmt.Errorf("ring pool is closed")
	ErrNotSupported      = fmt.Errorf("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidAlignment
	ErrCodeCapacityOverflow
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodePoolInvalid
	ErrCodePoolClosed
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
