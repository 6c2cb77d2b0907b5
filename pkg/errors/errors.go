// Package errors carries structured error information across every layer of
// the inference service.  AppError is the single error type; its ErrorCode
// drives HTTP status mapping, logging and the fallback routing decisions in
// the engine.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// AppError is the canonical service error.  It supports Go error wrapping,
// so errors.Is / errors.As / errors.Unwrap traverse the full chain.
//
//	return errors.New(errors.ErrCodeModelIncompatible, "classifier failed capability probe")
//	return errors.Wrap(readErr, errors.ErrCodeCorpusUnavailable, "failed to open corpus source")
type AppError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is the human-readable description returned to API callers.
	Message string

	// Detail carries debugging context (field names, file paths) that must
	// not leak sensitive internals.
	Detail string

	// Cause is the wrapped underlying error, if any.
	Cause error

	// Stack is the call stack captured at construction.  It is excluded from
	// Error() output; logging inspects the field directly.
	Stack string
}

// Error formats as "[<code>] <message>: <detail>", detail omitted when empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithDetail returns a copy with Detail set.  Nil-safe.
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a copy with Cause set.  Nil-safe.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// New constructs an AppError with a captured stack.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Stack: callStack()}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Stack: callStack()}
}

// Wrap constructs an AppError around err, or returns nil when err is nil.
// Passing CodeUnknown preserves the code of a wrapped *AppError, so a layer
// can re-message an error without discarding its classification.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{Code: code, Message: message, Cause: err, Stack: callStack()}
}

// IsCode reports whether any error in err's chain is an *AppError carrying
// the given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsModelIncompatible reports the recoverable structural incompatibility of a
// deserialized classifier.  The engine routes to the fallback predictor on
// true; every other model failure is surfaced.
func IsModelIncompatible(err error) bool { return IsCode(err, ErrCodeModelIncompatible) }

// IsCorpusUnavailable reports that the reference corpus could not be loaded.
// Matchers treat this as "zero candidates", not fatal.
func IsCorpusUnavailable(err error) bool { return IsCode(err, ErrCodeCorpusUnavailable) }

// GetCode extracts the code of the first *AppError in err's chain, CodeOK for
// nil and CodeUnknown for foreign errors.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// Factories for the conditions the service raises on hot paths.

// InvalidFeature flags one rejected input field; the field name travels in
// Detail so handlers can echo it without parsing the message.
func InvalidFeature(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidFeatureValue,
		Message: message,
		Detail:  "field=" + field,
		Stack:   callStack(),
	}
}

func ModelError(message string) *AppError {
	return &AppError{Code: ErrCodeModelError, Message: message, Stack: callStack()}
}

func ModelIncompatible(message string) *AppError {
	return &AppError{Code: ErrCodeModelIncompatible, Message: message, Stack: callStack()}
}

func CorpusUnavailable(message string) *AppError {
	return &AppError{Code: ErrCodeCorpusUnavailable, Message: message, Stack: callStack()}
}

func InvalidParam(message string) *AppError {
	return &AppError{Code: CodeInvalidParam, Message: message, Stack: callStack()}
}

const stackDepth = 32

// callStack formats the caller's stack, dropping runtime frames.
func callStack() string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
