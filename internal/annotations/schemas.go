package annotations

import "sort"

// KeySpec describes one recognized annotation key
type KeySpec struct {
	Name        string
	Required    bool
	Description string
	// Nested is the schema of the parenthesized argument list, if the key takes one.
	Nested *AnnotationSchema
}

// AnnotationSchema lists the keys an annotation form accepts
type AnnotationSchema struct {
	Type        AnnotationType
	Description string
	Keys        map[string]KeySpec
	Examples    []string
}

// KeyNames returns the recognized keys in sorted order
func (s AnnotationSchema) KeyNames() []string {
	names := make([]string, 0, len(s.Keys))
	for name := range s.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Required returns the keys that must be present
func (s AnnotationSchema) Required() []string {
	var names []string
	for _, name := range s.KeyNames() {
		if s.Keys[name].Required {
			names = append(names, name)
		}
	}
	return names
}

// StatusKey is the only variant-level key.
const StatusKey = "status_code"

// InternalErrorKey is the only type-level key.
const InternalErrorKey = "internal_error"

// VariantSchema defines the schema for //rest::variant annotations and for
// the argument list of internal_error(...)
var VariantSchema = AnnotationSchema{
	Type:        VariantAnnotationType,
	Description: "Maps an error variant to an HTTP status code",
	Keys: map[string]KeySpec{
		StatusKey: {
			Name:        StatusKey,
			Required:    true,
			Description: "Go expression assignable to int, embedded verbatim",
		},
	},
	Examples: []string{
		"//rest::variant status_code = http.StatusBadRequest",
		"//rest::variant status_code = 418",
	},
}

// ErrorSchema defines the schema for //rest::error annotations
var ErrorSchema = AnnotationSchema{
	Type:        ErrorAnnotation,
	Description: "Marks an interface as an error enum and configures generation",
	Keys: map[string]KeySpec{
		InternalErrorKey: {
			Name:        InternalErrorKey,
			Description: "Adds a catch-all InternalError variant wrapping any error",
			Nested:      &VariantSchema,
		},
	},
	Examples: []string{
		"//rest::error",
		"//rest::error internal_error",
		"//rest::error internal_error(status_code = http.StatusServiceUnavailable)",
	},
}

// SchemaFor returns the schema of an annotation type
func SchemaFor(t AnnotationType) AnnotationSchema {
	if t == ErrorAnnotation {
		return ErrorSchema
	}
	return VariantSchema
}
