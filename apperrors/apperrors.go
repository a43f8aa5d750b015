package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误分类
type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindConflict
	KindNotFound
	KindServer
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Status maps an error to its HTTP status. Unknown errors are server errors.
func Status(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsServer reports whether err should be hidden behind a generic message.
func IsServer(err error) bool {
	return Status(err) == http.StatusInternalServerError
}
