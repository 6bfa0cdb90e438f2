package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Diagnostic is implemented by every error the generator reports.
type Diagnostic interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the kind of diagnostic that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Annotation and declaration errors
	SyntaxErrorCode
	UnsupportedAttributeKeyCode
	MissingRequiredKeyCode
	NotAnEnumCode
	MissingAnnotationOnVariantCode
	InvalidVariantCode
	DuplicateVariantCode
	DuplicateAnnotationCode

	// Generation errors
	GenerationErrorCode
	TemplateErrorCode
	FileSystemErrorCode

	// Setup errors
	ConfigurationErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:                "SyntaxError",
	UnsupportedAttributeKeyCode:    "UnsupportedAttributeKey",
	MissingRequiredKeyCode:         "MissingRequiredKey",
	NotAnEnumCode:                  "NotAnEnum",
	MissingAnnotationOnVariantCode: "MissingAnnotationOnVariant",
	InvalidVariantCode:             "InvalidVariant",
	DuplicateVariantCode:           "DuplicateVariant",
	DuplicateAnnotationCode:        "DuplicateAnnotation",
	GenerationErrorCode:            "GenerationError",
	TemplateErrorCode:              "TemplateError",
	FileSystemErrorCode:            "FileSystemError",
	ConfigurationErrorCode:         "ConfigurationError",
}

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation represents where an error occurred in source code
type SourceLocation struct {
	File   string // file path where error occurred
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the concrete Diagnostic used throughout the generator.
type BaseError struct {
	Code        ErrorCode      // kind of error
	Message     string         // error message
	Loc         SourceLocation // where the error occurred
	Cause       error          // underlying error cause
	ContextData map[string]any // additional context information
	Hints       []string       // suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Loc.IsEmpty() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), e.Message)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the source location where the error occurred
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the error context data
func (e *BaseError) Context() map[string]any {
	if e.ContextData == nil {
		return make(map[string]any)
	}
	return e.ContextData
}

// Suggestions returns hints for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for e's code.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Code == e.Code
}

// WithLocation adds location information to the error
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value any) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]any)
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a hint for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// WithSuggestions adds multiple hints
func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...any) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// CodeOf returns the code of the first Diagnostic in err's chain.
func CodeOf(err error) ErrorCode {
	var d Diagnostic
	if stderrors.As(err, &d) {
		return d.ErrorCode()
	}
	return UnknownErrorCode
}

// LocationOf returns the location of the first Diagnostic in err's chain.
func LocationOf(err error) SourceLocation {
	var d Diagnostic
	if stderrors.As(err, &d) {
		return d.Location()
	}
	return SourceLocation{}
}

// MultipleErrors represents multiple diagnostics collected together
type MultipleErrors struct {
	Errors []Diagnostic
}

// Error implements the error interface
func (e *MultipleErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var messages []string
	for i, err := range e.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}

	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// Unwrap exposes every collected diagnostic to errors.Is and errors.As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add adds a diagnostic to the collection. Plain errors are wrapped as
// GenerationError, nested collections are flattened.
func (e *MultipleErrors) Add(err error) {
	if err == nil {
		return
	}
	var multi *MultipleErrors
	if stderrors.As(err, &multi) {
		e.Errors = append(e.Errors, multi.Errors...)
		return
	}
	var d Diagnostic
	if stderrors.As(err, &d) {
		e.Errors = append(e.Errors, d)
		return
	}
	e.Errors = append(e.Errors, Wrap(GenerationErrorCode, err.Error(), err))
}

// IsEmpty returns true if there are no errors
func (e *MultipleErrors) IsEmpty() bool {
	return len(e.Errors) == 0
}

// Count returns the number of errors
func (e *MultipleErrors) Count() int {
	return len(e.Errors)
}

// HasCode returns true if any error of the specified code exists
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// ErrorOrNil returns nil for an empty collection.
func (e *MultipleErrors) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// NewMultipleErrors creates a new MultipleErrors collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{
		Errors: make([]Diagnostic, 0),
	}
}
