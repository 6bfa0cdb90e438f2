package models

import "github.com/toyz/resterr/internal/annotations"

// StatusEntry maps one variant to its status expression
type StatusEntry struct {
	Variant string
	Index   int
	Const   string // discriminant constant name
	Expr    annotations.Expression
}

// StatusMapping is the total variant to status table
type StatusMapping struct {
	Table   string // name of the generated table
	Entries []StatusEntry
}

// ResponseConversion pairs the status with the serialized body
type ResponseConversion struct {
	ContentType string
}

// MessageSource tells the serializer where error_message comes from
type MessageSource int

const (
	// MessageDisplay uses the variant's display text
	MessageDisplay MessageSource = iota
	// MessageFixed uses the generic internal error message
	MessageFixed
)

// SerializedVariant is the serialization plan of a single variant
type SerializedVariant struct {
	Variant string
	Code    string
	Message MessageSource
}

// Serialization is the structured serializer plan
type Serialization struct {
	CodeField    string
	MessageField string
	// FixedMessage is a Go expression, e.g. rest.InternalErrorMessage or a quoted override.
	FixedMessage string
	Variants     []SerializedVariant
}

// Schema describes the generated API schema
type Schema struct {
	Title     string
	Func      string // name of the generated schema function
	CodesFunc string
	CodesVar  string
	Codes     []string
	Required  []string
}

// ChainStart tells the formatter where a variant's cause chain begins
type ChainStart struct {
	Variant string
	// Expr is evaluated with the receiver named e.
	Expr string
}

// ChainFormatting is the debug formatter plan
type ChainFormatting struct {
	Variants []ChainStart
}

// VariantImpl carries per-variant rendering details shared by all behaviors
type VariantImpl struct {
	Name      string
	Const     string
	Receiver  string // "e V" or "e *V"
	Assertion string // value used in the conformance assertion
	Arity     Arity
	Opaque    bool
	Synthetic bool
	// Unwrap asks for a generated Unwrap method on a transparent variant.
	Unwrap bool
}

// Implementation is the full generation plan for one enum
type Implementation struct {
	Enum        string
	PackageName string
	FilePath    string
	Variants    []VariantImpl

	Status        StatusMapping
	Response      ResponseConversion
	Serialization Serialization
	Schema        Schema
	Chain         ChainFormatting

	// Synthetic is the catch-all variant to declare, if requested.
	Synthetic *VariantImpl
	// Converter names the To<Enum> helper, empty without a synthetic variant.
	Converter string

	Imports []Import
}
