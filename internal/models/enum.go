package models

import (
	"github.com/toyz/resterr/internal/annotations"
)

// InternalErrorVariant is the synthetic variant requested by internal_error.
const InternalErrorVariant = "InternalError"

// ArityKind describes the field shape of a variant
type ArityKind int

const (
	// ArityUnit is a struct with no fields
	ArityUnit ArityKind = iota
	// ArityPositional is a struct whose fields are all embedded
	ArityPositional
	// ArityNamed is a struct with at least one named field
	ArityNamed
)

func (k ArityKind) String() string {
	switch k {
	case ArityUnit:
		return "unit"
	case ArityPositional:
		return "positional"
	case ArityNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Field is a single struct field of a variant
type Field struct {
	Name     string // empty for embedded fields
	Type     string // type expression as written
	Embedded bool
}

// Arity is the field shape of a variant
type Arity struct {
	Kind   ArityKind
	Fields []Field
}

// Count returns the number of fields
func (a Arity) Count() int { return len(a.Fields) }

// Import is an import of the declaring file
type Import struct {
	Path  string
	Alias string // explicit alias, "" when none
}

// VariantDescriptor describes one variant of an error enum
type VariantDescriptor struct {
	Name        string
	Arity       Arity
	Annotations []annotations.RawAnnotation // raw //rest::variant lines, unparsed
	Loc         annotations.SourceLocation

	// PointerReceiver is set when the variant's Error method has a pointer receiver.
	PointerReceiver bool
	// HasUnwrap is set when the variant declares its own Unwrap method.
	HasUnwrap bool
	// Transparent variants embed a single error and inherit its display text.
	Transparent bool
	// Opaque variants never expose their payload when serialized.
	Opaque bool
	// Synthetic variants are added by the generator and declared in generated code.
	Synthetic bool
	// StatusCode is resolved up front for synthetic variants only.
	StatusCode *annotations.Expression
}

// Tag is the stable error code of the variant
func (v VariantDescriptor) Tag() string { return v.Name }

// EnumDescriptor is the declared shape of an error enum
type EnumDescriptor struct {
	Name        string
	PackageName string
	PackagePath string // directory of the package
	FilePath    string // declaring file
	Loc         annotations.SourceLocation
	Annotation  annotations.RawAnnotation

	// Args is the type-level annotation, parsed once by the front-end.
	Args     *annotations.AnnotationArguments
	Imports  []Import
	Variants []VariantDescriptor

	// NonEnum explains why the annotated declaration is not an error enum.
	NonEnum string
}

// IsEnum reports whether the annotated declaration has the shape of an enum
func (e *EnumDescriptor) IsEnum() bool { return e.NonEnum == "" }

// Variant returns the variant with the given name
func (e *EnumDescriptor) Variant(name string) (VariantDescriptor, bool) {
	for _, v := range e.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return VariantDescriptor{}, false
}

// Clone returns a copy whose variant slice can be extended without touching e.
func (e *EnumDescriptor) Clone() *EnumDescriptor {
	out := *e
	out.Imports = append([]Import(nil), e.Imports...)
	out.Variants = append([]VariantDescriptor(nil), e.Variants...)
	return &out
}

// PackageMetadata groups the enums found in one package directory
type PackageMetadata struct {
	PackageName string
	PackagePath string
	Enums       []*EnumDescriptor
	// Errs holds diagnostics for declarations that could not be described.
	Errs []error
}
