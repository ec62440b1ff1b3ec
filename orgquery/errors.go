package orgquery

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	ErrIO              ErrorKind = "io"
	ErrSQL             ErrorKind = "sql"
	ErrInvalidColumn   ErrorKind = "invalid_column"
	ErrInvalidDate     ErrorKind = "invalid_date"
	ErrBirthdayFilter  ErrorKind = "birthday_filter"
	ErrParamValidation ErrorKind = "param_validation"
	ErrFilterStage     ErrorKind = "filter_stage"
	ErrNotFound        ErrorKind = "not_found"
)

// Error is the single error type the compilers return. Stage names the
// filter stage that failed, Plan carries the textual form of the partially
// built plan at the point of failure.
type Error struct {
	Kind    ErrorKind
	Stage   string
	Field   string
	Message string
	Plan    string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Stage != "" {
		base = fmt.Sprintf("%s (stage=%s)", base, e.Stage)
	}
	if e.Field != "" {
		base = fmt.Sprintf("%s (field=%s)", base, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func InvalidColumnError(columns ...string) *Error {
	return &Error{
		Kind:    ErrInvalidColumn,
		Message: "invalid column(s): " + strings.Join(columns, ", "),
		Field:   strings.Join(columns, ", "),
	}
}

func InvalidDateError(expr string) *Error {
	return &Error{Kind: ErrInvalidDate, Message: fmt.Sprintf("unrecognized date expression: %q", expr)}
}

func BirthdayError(bound string, cause error) *Error {
	return &Error{Kind: ErrBirthdayFilter, Message: "birthday filter error", Field: bound, Cause: cause}
}

func ValidationError(msg string) *Error {
	return &Error{Kind: ErrParamValidation, Message: msg}
}

// StageError tags a failure with the stage that produced it and the plan
// text built so far. If cause is already a *Error its kind is preserved.
func StageError(stage string, cause error, planText string) *Error {
	var inner *Error
	if errors.As(cause, &inner) {
		return &Error{
			Kind:    inner.Kind,
			Stage:   stage,
			Field:   inner.Field,
			Message: inner.Message,
			Plan:    planText,
			Cause:   inner.Cause,
		}
	}
	return &Error{
		Kind:    ErrFilterStage,
		Stage:   stage,
		Message: fmt.Sprintf("error in %s filter", stage),
		Plan:    planText,
		Cause:   cause,
	}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// StageOf returns the failing stage name, or "" if the error carries none.
func StageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}
