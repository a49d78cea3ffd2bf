package utils

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP status codes by the handlers.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// apiError pairs a client-facing message with one of the sentinels above,
// so err.Error() stays presentable while errors.Is still classifies it.
type apiError struct {
	kind error
	msg  string
}

func (e *apiError) Error() string { return e.msg }

func (e *apiError) Unwrap() error { return e.kind }

func NotFoundf(format string, args ...any) error {
	return &apiError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func InvalidParameterf(format string, args ...any) error {
	return &apiError{kind: ErrInvalidParameter, msg: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...any) error {
	return &apiError{kind: ErrUnauthorized, msg: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) error {
	return &apiError{kind: ErrForbidden, msg: fmt.Sprintf(format, args...)}
}

// ValidationError carries per-field messages produced by ValidateStruct.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + FormatValidationErrors(e.Fields)
}
