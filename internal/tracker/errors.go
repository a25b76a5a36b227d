// internal/tracker/errors.go
package tracker

import (
	"errors"
	"fmt"

	"github.com/law-makers/pricetrack/internal/diagnostics"
)

// ErrorCode classifies a failed run
type ErrorCode string

const (
	CodeBlocked       ErrorCode = "BLOCKED"
	CodePriceNotFound ErrorCode = "PRICE_NOT_FOUND"
	CodeTitleNotFound ErrorCode = "TITLE_NOT_FOUND"
	CodeNavigation    ErrorCode = "NAVIGATION"
	CodeRecordFailed  ErrorCode = "RECORD_FAILED"
	CodeUnexpected    ErrorCode = "UNEXPECTED"
)

// Stage names a step of the run
type Stage string

const (
	StageStart        Stage = "start"
	StageHome         Stage = "home"
	StageInterstitial Stage = "interstitial"
	StageProduct      Stage = "product"
	StageBody         Stage = "body"
	StageInterception Stage = "interception"
	StageTitle        Stage = "title"
	StagePrice        Stage = "price"
	StageRecord       Stage = "record"
)

// Sentinels for errors.Is; matching compares codes only.
var (
	ErrBlocked       = &Error{Code: CodeBlocked}
	ErrPriceNotFound = &Error{Code: CodePriceNotFound}
	ErrTitleNotFound = &Error{Code: CodeTitleNotFound}
	ErrNavigation    = &Error{Code: CodeNavigation}
	ErrRecordFailed  = &Error{Code: CodeRecordFailed}
	ErrUnexpected    = &Error{Code: CodeUnexpected}
)

// Error wraps a run failure with the stage it happened in
type Error struct {
	Code       ErrorCode
	Stage      Stage
	Message    string
	Underlying error
	Details    map[string]interface{}

	// Diagnostics is set when artefacts were captured for this failure.
	Diagnostics *diagnostics.Report
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// newError creates a new Error
func newError(code ErrorCode, stage Stage, message string, err error) *Error {
	return &Error{
		Code:       code,
		Stage:      stage,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]interface{}),
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}

// CodeOf returns the code carried by err, or CodeUnexpected
func CodeOf(err error) ErrorCode {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return CodeUnexpected
}
