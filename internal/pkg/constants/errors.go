package constants

import (
	"fmt"
	"net/http"
)

// CodedError carries the HTTP status the API error handler should answer
// with when the error reaches the transport layer.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound = NewCodedError(http.StatusNotFound, "not found")
	ErrBadRequest = NewCodedError(http.StatusBadRequest, "bad request")
)

// UnknownStoreError is raised by SQL generation when an offer names a store
// that has no slug mapping. The store name is kept so the caller can report
// exactly which feed is misconfigured.
type UnknownStoreError struct {
	StoreName string
}

func (e *UnknownStoreError) Error() string {
	return fmt.Sprintf("unknown store name: %q has no slug mapping", e.StoreName)
}
