package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured (code, message) pair with the HTTP status it maps to.
// All validation failures in the ledger and inventory services surface as
// *Error values; the API layer renders them verbatim and never leaks raw
// internal errors to clients.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// From unwraps err into an *Error if it carries one.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code string) bool {
	if e, ok := From(err); ok {
		return e.Code == code
	}
	return false
}

// Error codes surfaced at the boundary.
const (
	CodeInvalidDelta       = "INVALID_DELTA"
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeNoChange           = "NO_CHANGE"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidRange       = "INVALID_RANGE"
	CodeInvalidSort        = "INVALID_SORT"
	CodeInvalidTimezone    = "INVALID_TIMEZONE"
	CodeInvalidAction      = "INVALID_ACTION"
	CodeInvalidBody        = "INVALID_BODY"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodePasswordTooLong    = "PASSWORD_TOO_LONG"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
)

func InvalidDelta(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidDelta, message)
}

// InsufficientStock carries the current quantity and the requested magnitude
// for diagnostics.
func InsufficientStock(current, requested int64) *Error {
	return New(http.StatusBadRequest, CodeInsufficientStock,
		fmt.Sprintf("insufficient stock: have %d, requested %d", current, requested))
}

func NoChange() *Error {
	return New(http.StatusBadRequest, CodeNoChange, "quantity unchanged, nothing to record")
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, CodeNotFound, what+" not found")
}

func InvalidRange(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidRange, message)
}

// BadRequest builds a 400 with a caller-chosen code naming the offending value.
func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}
