package api

import (
	"errors"
	"fmt"
)

// unknownErrorMessage is shown when the server's error body carries no
// usable detail field.
const unknownErrorMessage = "An unknown error occurred."

// Error is the normalized failure for any backend call. Detail is the
// human-readable message to surface; Status is the HTTP status when the
// server responded at all (0 for transport-level failures).
type Error struct {
	Op     string // Operation: "login", "getGroup", "mySubmissions", ...
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %s [%d]: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("api %s: %s", e.Op, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the display message for this error.
func (e *Error) Message() string {
	return e.Detail
}

// wrapError creates an Error with context.
func wrapError(op string, status int, detail string, err error) error {
	if detail == "" {
		detail = unknownErrorMessage
	}
	return &Error{
		Op:     op,
		Status: status,
		Detail: detail,
		Err:    err,
	}
}

// ErrorMessage extracts the display message from any error. API errors
// surface their server-provided detail; everything else falls back to the
// generic message.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if err != nil {
		return err.Error()
	}
	return unknownErrorMessage
}
