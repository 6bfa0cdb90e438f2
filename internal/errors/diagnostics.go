package errors

import (
	"fmt"
	"strings"
)

// Sentinels for errors.Is. They carry only a code.
var (
	ErrSyntax                     = &BaseError{Code: SyntaxErrorCode}
	ErrUnsupportedAttributeKey    = &BaseError{Code: UnsupportedAttributeKeyCode}
	ErrMissingRequiredKey         = &BaseError{Code: MissingRequiredKeyCode}
	ErrNotAnEnum                  = &BaseError{Code: NotAnEnumCode}
	ErrMissingAnnotationOnVariant = &BaseError{Code: MissingAnnotationOnVariantCode}
	ErrInvalidVariant             = &BaseError{Code: InvalidVariantCode}
	ErrDuplicateVariant           = &BaseError{Code: DuplicateVariantCode}
	ErrDuplicateAnnotation        = &BaseError{Code: DuplicateAnnotationCode}
	ErrGeneration                 = &BaseError{Code: GenerationErrorCode}
	ErrConfiguration              = &BaseError{Code: ConfigurationErrorCode}
	ErrFileSystem                 = &BaseError{Code: FileSystemErrorCode}
)

// Syntax reports a malformed annotation.
func Syntax(message string, loc SourceLocation) *BaseError {
	return New(SyntaxErrorCode, "syntax error: "+message).WithLocation(loc)
}

// UnsupportedAttributeKey reports an annotation key the generator does not recognize.
func UnsupportedAttributeKey(key string, loc SourceLocation, supported ...string) *BaseError {
	err := Newf(UnsupportedAttributeKeyCode, "unsupported rest_error attribute '%s'", key).
		WithLocation(loc).
		WithContext("key", key)
	if len(supported) > 0 {
		err.WithSuggestion(fmt.Sprintf("supported keys here: %s", strings.Join(supported, ", ")))
	}
	return err
}

// MissingRequiredKey reports an annotation that omits a mandatory key.
func MissingRequiredKey(key string, loc SourceLocation) *BaseError {
	return Newf(MissingRequiredKeyCode, "missing required attribute '%s'", key).
		WithLocation(loc).
		WithContext("key", key).
		WithSuggestion(fmt.Sprintf("add '%s = <expression>' to the annotation", key))
}

// NotAnEnum reports a //rest::error annotation on a declaration that is not an error enum.
func NotAnEnum(name string, loc SourceLocation, reason string) *BaseError {
	return Newf(NotAnEnumCode, "'%s' is not an error enum: %s", name, reason).
		WithLocation(loc).
		WithContext("type", name).
		WithSuggestion("declare the enum as the first spec of a grouped type declaration: type ( Enum interface{ rest.Error }; Variant struct{...} )")
}

// MissingAnnotationOnVariant reports a variant without a //rest::variant annotation.
func MissingAnnotationOnVariant(enum, variant string, loc SourceLocation) *BaseError {
	return Newf(MissingAnnotationOnVariantCode, "variant '%s' of '%s' has no //rest::variant annotation", variant, enum).
		WithLocation(loc).
		WithContext("enum", enum).
		WithContext("variant", variant).
		WithSuggestion("add '//rest::variant status_code = <expression>' above the variant")
}

// InvalidVariant reports a variant spec that is not a struct type.
func InvalidVariant(enum, variant string, loc SourceLocation, reason string) *BaseError {
	return Newf(InvalidVariantCode, "variant '%s' of '%s' is invalid: %s", variant, enum, reason).
		WithLocation(loc).
		WithContext("enum", enum).
		WithContext("variant", variant)
}

// DuplicateVariant reports a variant name that is already taken in the package.
func DuplicateVariant(variant string, loc SourceLocation, existing SourceLocation) *BaseError {
	err := Newf(DuplicateVariantCode, "variant '%s' is already declared", variant).
		WithLocation(loc).
		WithContext("variant", variant)
	if !existing.IsEmpty() {
		err.WithSuggestion(fmt.Sprintf("previous declaration at %s", existing))
	}
	return err
}

// DuplicateAnnotation reports a variant carrying more than one //rest::variant line.
func DuplicateAnnotation(variant string, loc SourceLocation) *BaseError {
	return Newf(DuplicateAnnotationCode, "variant '%s' has more than one //rest::variant annotation", variant).
		WithLocation(loc).
		WithContext("variant", variant).
		WithSuggestion("merge the annotations into a single line")
}
