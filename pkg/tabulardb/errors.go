package tabulardb

import (
	"fmt"
	"runtime"

	pingcaperrors "github.com/pingcap/errors"
)

// ErrorCode enumerates the error kinds spec.md §7 requires (an immediate,
// fatal-to-the-calling-operation failure that carries a human-readable
// message). Grounded on the teacher's pkg/api/errors.go ErrorCode enum.
type ErrorCode string

const (
	ErrCodeInvalidColumns  ErrorCode = "INVALID_COLUMNS"
	ErrCodeUnknownOperator ErrorCode = "UNKNOWN_OPERATOR"
	ErrCodeWrongTable      ErrorCode = "WRONG_TABLE"
	ErrCodeTableDropped    ErrorCode = "TABLE_DROPPED"
	ErrCodeIndexDropped    ErrorCode = "INDEX_DROPPED"
	ErrCodeIndexCorruption ErrorCode = "INDEX_CORRUPTION"
)

// Error is the single error type every public operation in this package
// returns on failure: a code, a message, the call stack at the point the
// error was created, and an optional wrapped cause. Grounded on the
// teacher's pkg/api/errors.go *Error type.
type Error struct {
	Code    ErrorCode
	Message string
	Stack   []string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets callers use errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error { return e.Cause }

// NewError constructs an *Error, capturing the current call stack.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Stack:   captureStackTrace(),
		Cause:   cause,
	}
}

// WrapError attaches code/message to err. If err is already one of ours
// its original stack is preserved; otherwise err is first run through
// pingcap/errors.AddStack so the wrapped cause itself carries a
// pingcap-style stack trace, recorded at the point of wrapping,
// independent of ours.
func WrapError(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*Error); ok {
		return &Error{
			Code:    code,
			Message: message,
			Stack:   apiErr.Stack,
			Cause:   apiErr,
		}
	}
	return &Error{
		Code:    code,
		Message: message,
		Stack:   captureStackTrace(),
		Cause:   pingcaperrors.AddStack(err),
	}
}

func captureStackTrace() []string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])
	var out []string
	for {
		frame, more := frames.Next()
		out = append(out, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}
	return out
}
