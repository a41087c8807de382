// Package errs provides the error type handlers return to callers. An
// *Error is a web.Encoder, so a handler can return it directly.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// Code classifies an Error and selects its HTTP status.
type Code int

const (
	OK Code = iota
	NotFound
	InvalidArgument
	FailedPrecondition
	Unauthenticated
	Internal
	InternalOnlyLog
)

// StorageFault marks a failed read or write against the store.
const StorageFault = FailedPrecondition

var httpStatus = map[Code]int{
	OK:                 http.StatusOK,
	NotFound:           http.StatusNotFound,
	InvalidArgument:    http.StatusBadRequest,
	FailedPrecondition: http.StatusBadRequest,
	Unauthenticated:    http.StatusUnauthorized,
	Internal:           http.StatusInternalServerError,
	InternalOnlyLog:    http.StatusInternalServerError,
}

var codeNames = map[Code]string{
	OK:                 "ok",
	NotFound:           "not_found",
	InvalidArgument:    "invalid_argument",
	FailedPrecondition: "failed_precondition",
	Unauthenticated:    "unauthenticated",
	Internal:           "internal",
	InternalOnlyLog:    "internal_only_log",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is the failure body sent to the caller. Message is the stable,
// human readable text and Detail the underlying fault, if any.
type Error struct {
	Code     Code   `json:"-"`
	Message  string `json:"message"`
	Detail   string `json:"error,omitempty"`
	FuncName string `json:"-"`
	FileName string `json:"-"`
	err      error
}

// New builds an Error whose Detail is err's text. err may be nil.
func New(code Code, message string, err error) *Error {
	e := &Error{
		Code:    code,
		Message: message,
		err:     err,
	}
	if err != nil {
		e.Detail = err.Error()
	}
	e.FuncName, e.FileName = caller(2)
	return e
}

// Newf builds an Error without detail from a formatted message.
func Newf(code Code, format string, v ...any) *Error {
	e := &Error{
		Code:    code,
		Message: fmt.Sprintf(format, v...),
	}
	e.FuncName, e.FileName = caller(2)
	return e
}

func caller(skip int) (funcName, fileName string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", ""
	}
	return runtime.FuncForPC(pc).Name(), fmt.Sprintf("%s:%d", file, line)
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

func (e *Error) Unwrap() error {
	return e.err
}

// Encode implements the web.Encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus implements the web.httpStatus interface.
func (e *Error) HTTPStatus() int {
	if status, ok := httpStatus[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsError reports whether err is or wraps an *Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// GetError returns the *Error inside err, or nil.
func GetError(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}
	return e
}
