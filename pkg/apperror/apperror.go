package apperror

import (
	"errors"
	"net/http"
	"strings"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindUpload       Kind = "upload"
	KindInternal     Kind = "internal"
)

// AppError is the tagged error carried through every orchestrator step.
// Handlers never branch on error strings, only on Kind.
type AppError struct {
	Kind       Kind
	HTTPStatus int
	Message    string
	Messages   []string
	Err        error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(messages ...string) *AppError {
	return &AppError{Kind: KindValidation, HTTPStatus: http.StatusBadRequest, Messages: messages}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, HTTPStatus: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, HTTPStatus: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, HTTPStatus: http.StatusForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, HTTPStatus: http.StatusNotFound, Message: message}
}

func Upload(message string, err error) *AppError {
	return &AppError{Kind: KindUpload, HTTPStatus: http.StatusInternalServerError, Message: message, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, HTTPStatus: http.StatusInternalServerError, Message: "Something went wrong", Err: err}
}

// As unwraps err into an *AppError, falling back to Internal for
// unclassified errors so no detail leaks to the client.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsClientFault reports whether the error maps to the "fail" envelope
// status (4xx) rather than "error" (5xx).
func (e *AppError) IsClientFault() bool {
	return e.HTTPStatus >= 400 && e.HTTPStatus < 500
}
