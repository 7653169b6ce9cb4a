// Package sqlspecerr defines the tagged error variant returned by every
// stage of the statement compilation pipeline. A single Kind-based type
// replaces the error-per-package conventions the pipeline would otherwise
// accumulate, so callers can switch on one enum regardless of which
// processor raised the failure.
package sqlspecerr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories the core can report.
type Kind string

const (
	ParseError        Kind = "parse_error"
	EmptyStatement    Kind = "empty_statement"
	StyleNotSupported Kind = "style_not_supported"
	MixedStyles       Kind = "mixed_styles"
	NoSuchParameter   Kind = "no_such_parameter"
	ArityMismatch     Kind = "arity_mismatch"
	ValidationBlocked Kind = "validation_blocked"
	CompilationInternal Kind = "compilation_internal"
)

// Span is a byte range in the original SQL text, used only for diagnostics.
type Span struct {
	Start int
	End   int
}

// Error is the single error type produced by the core. Callers distinguish
// failures with errors.Is against the sentinel for the Kind they care
// about, e.g. errors.Is(err, sqlspecerr.ErrValidationBlocked).
type Error struct {
	Kind    Kind
	Message string
	SQL     string // original SQL excerpt, when available
	Span    *Span
	Cause   error
}

func (e *Error) Error() string {
	if e.SQL != "" {
		return fmt.Sprintf("%s: %s (near %q)", e.Kind, e.Message, excerpt(e.SQL))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for e's Kind, or another
// *Error with the same Kind. This lets errors.Is(err, ErrParseError) work
// without requiring callers to type-assert.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return te.Kind == e.Kind
	}
	return false
}

func excerpt(sql string) string {
	const max = 80
	if len(sql) <= max {
		return sql
	}
	return sql[:max] + "..."
}

// Sentinels, one per Kind, so callers can write errors.Is(err, sqlspecerr.ErrParseError).
var (
	ErrParseError         = &Error{Kind: ParseError}
	ErrEmptyStatement     = &Error{Kind: EmptyStatement}
	ErrStyleNotSupported  = &Error{Kind: StyleNotSupported}
	ErrMixedStyles        = &Error{Kind: MixedStyles}
	ErrNoSuchParameter    = &Error{Kind: NoSuchParameter}
	ErrArityMismatch      = &Error{Kind: ArityMismatch}
	ErrValidationBlocked  = &Error{Kind: ValidationBlocked}
	ErrCompilationInternal = &Error{Kind: CompilationInternal}
)

// New constructs an *Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind wrapping a cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithSQL attaches the original SQL excerpt and returns e for chaining.
func (e *Error) WithSQL(sql string) *Error {
	e.SQL = sql
	return e
}

// WithSpan attaches a byte span and returns e for chaining.
func (e *Error) WithSpan(start, end int) *Error {
	e.Span = &Span{Start: start, End: end}
	return e
}
