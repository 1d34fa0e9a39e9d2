// Package apperror provides structured errors for the routing core: a stable
// code, a human-readable message, optional field and details, and a mapping
// to gRPC status codes so transports can surface them unchanged.
package apperror

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorCode represents a specific application error code.
type ErrorCode string

const (
	// Query
	CodeOutOfRangeTarget ErrorCode = "OUT_OF_RANGE_TARGET"
	CodeInvalidSource    ErrorCode = "INVALID_SOURCE"
	CodeUnreachableNode  ErrorCode = "UNREACHABLE_NODE"

	// Input
	CodeMalformedInput ErrorCode = "MALFORMED_INPUT"
	CodeNilInput       ErrorCode = "NIL_INPUT"

	// General
	CodeTimeout         ErrorCode = "TIMEOUT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// Severity defines the criticality level of an error.
type Severity int

const (
	// SeverityWarning is an expected outcome the caller can report and move on from.
	SeverityWarning Severity = iota
	// SeverityError requires the caller to change its input.
	SeverityError
	// SeverityCritical indicates a broken invariant.
	SeverityCritical
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Error is the application error type.
type Error struct {
	Code     ErrorCode      // Code is a unique identifier for the type of error.
	Message  string         // Message is a human-readable description of the error.
	Field    string         // Field names the input that caused the error, if any.
	Details  map[string]any // Details carries structured context such as vertex ids.
	Cause    error          // Cause is the underlying error, if any.
	Severity Severity
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// GRPCStatus converts the error into a gRPC status.Status.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.grpcCode(), e.Message)
}

func (e *Error) grpcCode() codes.Code {
	switch e.Code {
	case CodeOutOfRangeTarget, CodeInvalidSource, CodeMalformedInput,
		CodeNilInput, CodeInvalidArgument:
		return codes.InvalidArgument

	case CodeUnreachableNode:
		return codes.FailedPrecondition

	case CodeNotFound:
		return codes.NotFound

	case CodeTimeout:
		return codes.DeadlineExceeded

	default:
		return codes.Internal
	}
}

// New creates a new application error with SeverityError.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Details:  make(map[string]any),
		Severity: SeverityError,
	}
}

// NewWithField creates a new application error bound to an input field.
func NewWithField(code ErrorCode, message, field string) *Error {
	e := New(code, message)
	e.Field = field
	return e
}

// NewWarning creates a new application error with SeverityWarning.
func NewWarning(code ErrorCode, message string) *Error {
	e := New(code, message)
	e.Severity = SeverityWarning
	return e
}

// Wrap creates an application error around an existing error.
func Wrap(cause error, code ErrorCode, message string) *Error {
	e := New(code, message)
	e.Cause = cause
	return e
}

// WithDetails adds a key-value pair to the details map and returns the error.
func (e *Error) WithDetails(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithField sets the field associated with the error and returns the error.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithSeverity sets the severity level and returns the error.
func (e *Error) WithSeverity(s Severity) *Error {
	e.Severity = s
	return e
}

// Is reports whether err is an application error with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code extracts the ErrorCode from an error, CodeInternal for foreign errors.
func Code(err error) ErrorCode {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsWarning reports whether err is an application error with SeverityWarning.
func IsWarning(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Severity == SeverityWarning
	}
	return false
}

// ToGRPC converts any error into a gRPC status error.
func ToGRPC(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.GRPCStatus().Err()
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	return status.Error(codes.Internal, err.Error())
}

// Unreachable reports that target has no finite distance from source.
// It is a warning: "no path" is an ordinary answer, not a failure of the input.
func Unreachable(source, target int) *Error {
	return NewWarning(CodeUnreachableNode,
		fmt.Sprintf("no path from %d to %d", source, target)).
		WithDetails("source", source).
		WithDetails("target", target)
}

// OutOfRangeTarget reports a target id above the largest known vertex.
func OutOfRangeTarget(target, maxVertex int) *Error {
	return NewWithField(CodeOutOfRangeTarget,
		fmt.Sprintf("target %d is outside [0, %d]", target, maxVertex), "target").
		WithDetails("target", target).
		WithDetails("max_vertex", maxVertex)
}

// InvalidSource reports a source id outside the graph.
func InvalidSource(source, maxVertex int) *Error {
	return NewWithField(CodeInvalidSource,
		fmt.Sprintf("source %d is outside [0, %d]", source, maxVertex), "source").
		WithDetails("source", source).
		WithDetails("max_vertex", maxVertex)
}

// NilGraph reports a query against a nil graph.
func NilGraph() *Error {
	return NewWithField(CodeNilInput, "graph is nil", "graph")
}

// Canceled wraps a context error raised while a search was running.
func Canceled(cause error) *Error {
	return Wrap(cause, CodeTimeout, "search canceled")
}
