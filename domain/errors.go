package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeInvalid          ErrorCode = "INVALID"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeInternal         ErrorCode = "INTERNAL"
	ErrCodeInsufficientTime ErrorCode = "INSUFFICIENT_TIME"
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "task not found")
	ErrArchivedNotFound = NewError(ErrCodeNotFound, "archived task not found")
	ErrBlockNotFound    = NewError(ErrCodeNotFound, "planner block not found")
	ErrSettingNotFound  = NewError(ErrCodeNotFound, "setting not found")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
	ErrInsufficientTime = NewError(ErrCodeInsufficientTime, "less than a minute left in the block")
	ErrStoreUnavailable = NewError(ErrCodeStoreUnavailable, "persistent store is not available")
	ErrSessionActive    = NewError(ErrCodeConflict, "a focus session is already running")
	ErrNoActiveSession  = NewError(ErrCodeConflict, "no focus session is running")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
