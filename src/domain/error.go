package domain

import (
	"errors"
	"net/http"
)

type ErrorCode struct {
	Name       string
	StatusCode int
}

var (
	ErrorCodeParameterInvalid     = ErrorCode{Name: "PARAMETER_INVALID", StatusCode: http.StatusBadRequest}
	ErrorCodeResourceNotFound     = ErrorCode{Name: "RESOURCE_NOT_FOUND", StatusCode: http.StatusNotFound}
	ErrorCodeAuthNotAuthenticated = ErrorCode{Name: "AUTH_NOT_AUTHENTICATED", StatusCode: http.StatusUnauthorized}
	ErrorCodeAuthPermissionDenied = ErrorCode{Name: "AUTH_PERMISSION_DENIED", StatusCode: http.StatusForbidden}
	ErrorCodeInternalProcess      = ErrorCode{Name: "INTERNAL_PROCESS", StatusCode: http.StatusInternalServerError}
	ErrorCodeRemoteProcess        = ErrorCode{Name: "REMOTE_PROCESS_ERROR", StatusCode: http.StatusBadGateway}
)

// DomainError carries an error code alongside the underlying cause.
// The zero value reports itself as an internal error.
type DomainError struct {
	code      ErrorCode
	err       error
	clientMsg string
	detail    map[string]interface{}
}

type ErrorOption func(*DomainError)

// WithMsg sets the message exposed to API clients
func WithMsg(msg string) ErrorOption {
	return func(e *DomainError) {
		e.clientMsg = msg
	}
}

// WithDetail attaches a key/value pair to the error detail
func WithDetail(key string, value interface{}) ErrorOption {
	return func(e *DomainError) {
		if e.detail == nil {
			e.detail = make(map[string]interface{})
		}
		e.detail[key] = value
	}
}

func NewError(code ErrorCode, err error, opts ...ErrorOption) error {
	if err == nil {
		err = errors.New(code.Name)
	}
	e := DomainError{
		code: code,
		err:  err,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func (e DomainError) Error() string {
	if e.err == nil {
		return e.Name()
	}
	return e.err.Error()
}

func (e DomainError) Unwrap() error {
	return e.err
}

func (e DomainError) Name() string {
	if e.code.Name == "" {
		return ErrorCodeInternalProcess.Name
	}
	return e.code.Name
}

func (e DomainError) HTTPStatus() int {
	if e.code.StatusCode == 0 {
		return ErrorCodeInternalProcess.StatusCode
	}
	return e.code.StatusCode
}

func (e DomainError) ClientMsg() string {
	return e.clientMsg
}

func (e DomainError) Detail() map[string]interface{} {
	return e.detail
}

func hasCode(err error, code ErrorCode) bool {
	var domainErr DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Name() == code.Name
}

// IsNotFound reports whether err signals a missing resource
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeResourceNotFound)
}

// IsRemote reports whether err comes from a failing upstream
func IsRemote(err error) bool {
	return hasCode(err, ErrorCodeRemoteProcess)
}
