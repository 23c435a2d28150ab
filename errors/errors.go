// Package errors provides an error taxonomy for routype APIs, bridging
// gRPC status codes and HTTP statuses in both directions.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"

	"github.com/jbingen/routype"
)

// CodeError is an error carrying a gRPC status code. Its HTTP status is
// derived from the code, so transports and callers agree on the
// classification without parsing messages.
type CodeError struct {
	code codes.Code
	err  error
}

func (e *CodeError) Error() string {
	return e.err.Error()
}

func (e *CodeError) Unwrap() error {
	return e.err
}

// Code returns the gRPC status code.
func (e *CodeError) Code() codes.Code {
	return e.code
}

// HttpCode returns the HTTP status corresponding to the code.
func (e *CodeError) HttpCode() int {
	return runtime.HTTPStatusFromCode(e.code)
}

func makeError(code codes.Code, format string, a ...interface{}) *CodeError {
	return &CodeError{
		code: code,
		err:  fmt.Errorf(format, a...),
	}
}

// Canceled indicates the operation was canceled by the caller.
func Canceled(format string, a ...interface{}) *CodeError {
	return makeError(codes.Canceled, format, a...)
}

// Unknown is for failures that carry no usable classification.
func Unknown(format string, a ...interface{}) *CodeError {
	return makeError(codes.Unknown, format, a...)
}

// InvalidArgument indicates the client supplied a bad argument,
// regardless of the state of the system.
func InvalidArgument(format string, a ...interface{}) *CodeError {
	return makeError(codes.InvalidArgument, format, a...)
}

// DeadlineExceeded means the operation expired before completion.
func DeadlineExceeded(format string, a ...interface{}) *CodeError {
	return makeError(codes.DeadlineExceeded, format, a...)
}

// NotFound means a requested entity was not found.
func NotFound(format string, a ...interface{}) *CodeError {
	return makeError(codes.NotFound, format, a...)
}

// AlreadyExists means an entity the client tried to create exists.
func AlreadyExists(format string, a ...interface{}) *CodeError {
	return makeError(codes.AlreadyExists, format, a...)
}

// PermissionDenied indicates the caller may not perform the operation.
func PermissionDenied(format string, a ...interface{}) *CodeError {
	return makeError(codes.PermissionDenied, format, a...)
}

// ResourceExhausted indicates a quota or resource limit was hit.
func ResourceExhausted(format string, a ...interface{}) *CodeError {
	return makeError(codes.ResourceExhausted, format, a...)
}

// FailedPrecondition indicates the system is not in a state required
// for the operation.
func FailedPrecondition(format string, a ...interface{}) *CodeError {
	return makeError(codes.FailedPrecondition, format, a...)
}

// Aborted indicates the operation was aborted, typically due to a
// concurrency conflict.
func Aborted(format string, a ...interface{}) *CodeError {
	return makeError(codes.Aborted, format, a...)
}

// OutOfRange means the operation was attempted past the valid range.
func OutOfRange(format string, a ...interface{}) *CodeError {
	return makeError(codes.OutOfRange, format, a...)
}

// Unimplemented indicates the operation is not supported.
func Unimplemented(format string, a ...interface{}) *CodeError {
	return makeError(codes.Unimplemented, format, a...)
}

// Internal means an invariant expected by the system was broken.
func Internal(format string, a ...interface{}) *CodeError {
	return makeError(codes.Internal, format, a...)
}

// Unavailable indicates the service is currently unavailable; the call
// may be retried by the caller.
func Unavailable(format string, a ...interface{}) *CodeError {
	return makeError(codes.Unavailable, format, a...)
}

// DataLoss indicates unrecoverable data loss or corruption.
func DataLoss(format string, a ...interface{}) *CodeError {
	return makeError(codes.DataLoss, format, a...)
}

// Unauthenticated indicates the request lacks valid credentials.
func Unauthenticated(format string, a ...interface{}) *CodeError {
	return makeError(codes.Unauthenticated, format, a...)
}

// CodeFromHTTPStatus maps an HTTP status to the closest gRPC code. It
// is the inverse of runtime.HTTPStatusFromCode for the statuses that
// mapping produces.
func CodeFromHTTPStatus(status int) codes.Code {
	switch status {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.Aborted
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	case 499:
		return codes.Canceled
	}
	if 200 <= status && status < 300 {
		return codes.OK
	}
	if 400 <= status && status < 500 {
		return codes.InvalidArgument
	}
	if 500 <= status && status < 600 {
		return codes.Internal
	}
	return codes.Unknown
}

// FromResponse classifies a client call failure. If err wraps a
// *routype.HTTPError, the result is a CodeError with the code derived
// from the HTTP status; otherwise nil.
func FromResponse(err error) *CodeError {
	var httpErr *routype.HTTPError
	if !errors.As(err, &httpErr) {
		return nil
	}
	return &CodeError{
		code: CodeFromHTTPStatus(httpErr.Status),
		err:  err,
	}
}
