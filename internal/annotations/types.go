package annotations

import (
	"fmt"

	"github.com/toyz/resterr/internal/errors"
)

// Prefix introduces every annotation comment.
const Prefix = "rest::"

// AnnotationType represents the kind of annotation
type AnnotationType int

const (
	// ErrorAnnotation marks the enum declaration: //rest::error [args]
	ErrorAnnotation AnnotationType = iota
	// VariantAnnotationType marks a single variant: //rest::variant args
	VariantAnnotationType
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ErrorAnnotation:
		return "error"
	case VariantAnnotationType:
		return "variant"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts the word after the prefix to an AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "error":
		return ErrorAnnotation, nil
	case "variant":
		return VariantAnnotationType, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// SourceLocation is shared with the diagnostics package so locations flow
// into reported errors unchanged.
type SourceLocation = errors.SourceLocation

// RawAnnotation is an annotation comment before its arguments are parsed.
type RawAnnotation struct {
	Type    AnnotationType
	Args    string         // text after the annotation word
	Loc     SourceLocation // position of the "//"
	ArgsLoc SourceLocation // position of the first byte of Args
}

// Expression is the verbatim source text of a status-code expression.
// It is never evaluated.
type Expression struct {
	Text string
	Loc  SourceLocation
}

func (e Expression) String() string { return e.Text }

// DefaultInternalStatus is used by a bare internal_error key.
var DefaultInternalStatus = Expression{Text: "http.StatusInternalServerError"}

// InternalErrorRequest asks for the synthetic catch-all variant.
type InternalErrorRequest struct {
	StatusCode Expression
	Defaulted  bool // no explicit status_code was given
	Loc        SourceLocation
}

// AnnotationArguments is the parsed form of a type-level annotation.
type AnnotationArguments struct {
	InternalError *InternalErrorRequest
	Loc           SourceLocation
}

// WantsInternalError reports whether the synthetic variant was requested.
func (a *AnnotationArguments) WantsInternalError() bool {
	return a != nil && a.InternalError != nil
}

// VariantAnnotation is the parsed form of a variant-level annotation.
type VariantAnnotation struct {
	StatusCode Expression
	Loc        SourceLocation
}
