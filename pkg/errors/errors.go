// Package errors provides the unified error type and factory functions for the
// Jyotish-Intelligence engine.  Every layer (domain, application,
// infrastructure, interfaces) uses AppError as the single carrier for
// structured error information, enabling consistent HTTP responses, CLI
// messages, logging, and metric labels.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and New/Wrap).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		// Trim standard-library noise to keep traces readable.
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// AppError: the canonical error type
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout the engine.
// It satisfies the standard error interface and supports error wrapping so
// that errors.Is / errors.As / errors.Unwrap work across all layers.
//
// Usage:
//
//	return errors.UnknownSign("Leoo")
//	return errors.Wrap(err, errors.CodeTilingViolation, "mahadasha Saturn")
//	return errors.New(errors.CodeDegenerateCalibration, "max must exceed min").
//	           WithDetail("min=40 max=18")
type AppError struct {
	// Code is the typed error code that uniquely identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description of the error.
	Message string

	// Detail carries supplementary context (offending value, node path, etc.).
	Detail string

	// Cause is the underlying error that triggered this AppError.
	Cause error

	// Stack contains the formatted call-stack captured at creation.  It is not
	// included in Error() output.
	Stack string
}

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>"
// The detail segment is omitted when Detail is empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code.String(), e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *AppError carrying the same code, so that
// errors.Is(err, ErrUnknownSign) matches any UnknownSign failure regardless of
// message or detail.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a shallow copy of the receiver with Detail set.
// It is safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// ─────────────────────────────────────────────────────────────────────────────
// Primary factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error.
// If err is nil, Wrap returns nil so it can be used inline.
//
// When err is already an *AppError and code is CodeUnknown the original code
// is preserved, so adding context never loses the domain classification.
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
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
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

// GetCode extracts the ErrorCode from the first *AppError found in err's chain.
// If no *AppError is present, CodeUnknown is returned; a nil error yields CodeOK.
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

// IsUnknownSign reports whether err stems from a sign or nakshatra name that
// did not resolve against the catalogue.
func IsUnknownSign(err error) bool { return IsCode(err, CodeUnknownSign) }

// IsTilingViolation reports whether err stems from a malformed period tree.
func IsTilingViolation(err error) bool { return IsCode(err, CodeTilingViolation) }

// IsDegenerateCalibration reports whether err stems from a calibration with
// max <= min.
func IsDegenerateCalibration(err error) bool { return IsCode(err, CodeDegenerateCalibration) }

// IsValidation reports whether err is a caller-input problem that maps to a
// 4xx response.
func IsValidation(err error) bool {
	status := HTTPStatus(GetCode(err))
	return status >= 400 && status < 500
}

// ─────────────────────────────────────────────────────────────────────────────
// Convenience factory functions
// ─────────────────────────────────────────────────────────────────────────────

// UnknownSign constructs a CodeUnknownSign AppError naming the offending input.
func UnknownSign(name string) *AppError {
	return &AppError{
		Code:    CodeUnknownSign,
		Message: "unknown zodiac sign",
		Detail:  fmt.Sprintf("%q", name),
		Stack:   captureStack(1),
	}
}

// TilingViolation constructs a CodeTilingViolation AppError.
func TilingViolation(message string) *AppError {
	return &AppError{
		Code:    CodeTilingViolation,
		Message: message,
		Stack:   captureStack(1),
	}
}

// DegenerateCalibration constructs a CodeDegenerateCalibration AppError.
func DegenerateCalibration(min, max float64) *AppError {
	return &AppError{
		Code:    CodeDegenerateCalibration,
		Message: "calibration max must be greater than min",
		Detail:  fmt.Sprintf("min=%g max=%g", min, max),
		Stack:   captureStack(1),
	}
}

// InvalidParam constructs a CodeInvalidParam AppError.
func InvalidParam(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidParam,
		Message: message,
		Stack:   captureStack(1),
	}
}

// NotFound constructs a CodeNotFound AppError.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Internal constructs a CodeInternal AppError.
// Use this for unexpected failures where no more specific code applies.
func Internal(message string) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Sentinels for errors.Is comparisons.  Matching is by code only.
var (
	ErrUnknownSign           = &AppError{Code: CodeUnknownSign, Message: "unknown zodiac sign"}
	ErrTilingViolation       = &AppError{Code: CodeTilingViolation, Message: "period tree tiling violated"}
	ErrDegenerateCalibration = &AppError{Code: CodeDegenerateCalibration, Message: "degenerate calibration"}
)

//Personal.AI order the ending
