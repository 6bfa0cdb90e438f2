package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocationString(t *testing.T) {
	tests := []struct {
		loc      SourceLocation
		expected string
	}{
		{SourceLocation{}, "unknown location"},
		{SourceLocation{File: "a.go"}, "a.go"},
		{SourceLocation{File: "a.go", Line: 3}, "a.go:3"},
		{SourceLocation{File: "a.go", Line: 3, Column: 7}, "a.go:3:7"},
	}

	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "NotAnEnum", NotAnEnumCode.String())
	assert.Equal(t, "MissingAnnotationOnVariant", MissingAnnotationOnVariantCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(999).String())
}

func TestBaseErrorFormatting(t *testing.T) {
	loc := SourceLocation{File: "errors.go", Line: 12, Column: 20}

	err := UnsupportedAttributeKey("status", loc, "status_code")
	assert.Equal(t, "errors.go:12:20: unsupported rest_error attribute 'status'", err.Error())
	assert.Equal(t, []string{"supported keys here: status_code"}, err.Suggestions())
	assert.Equal(t, "status", err.Context()["key"])

	plain := New(GenerationErrorCode, "boom")
	assert.Equal(t, "boom", plain.Error())
	assert.Empty(t, plain.Context())
}

func TestSentinelMatching(t *testing.T) {
	loc := SourceLocation{File: "errors.go", Line: 1}

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"syntax", Syntax("unexpected token", loc), ErrSyntax},
		{"unsupported key", UnsupportedAttributeKey("x", loc), ErrUnsupportedAttributeKey},
		{"missing key", MissingRequiredKey("status_code", loc), ErrMissingRequiredKey},
		{"not an enum", NotAnEnum("Foo", loc, "not an interface"), ErrNotAnEnum},
		{"missing annotation", MissingAnnotationOnVariant("E", "V", loc), ErrMissingAnnotationOnVariant},
		{"invalid variant", InvalidVariant("E", "V", loc, "not a struct"), ErrInvalidVariant},
		{"duplicate variant", DuplicateVariant("V", loc, SourceLocation{}), ErrDuplicateVariant},
		{"duplicate annotation", DuplicateAnnotation("V", loc), ErrDuplicateAnnotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, stderrors.Is(tt.err, tt.sentinel))
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, stderrors.Is(wrapped, tt.sentinel))
			assert.False(t, stderrors.Is(New(GenerationErrorCode, "other"), tt.sentinel))
		})
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotAnEnum("X", SourceLocation{}, "reason"))
	assert.Equal(t, NotAnEnumCode, CodeOf(err))
	assert.Equal(t, UnknownErrorCode, CodeOf(stderrors.New("plain")))
}

func TestWrappersKeepCause(t *testing.T) {
	cause := stderrors.New("permission denied")

	err := WrapFileSystemError("write", "autogen_x.go", cause)
	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "failed to write file 'autogen_x.go'", err.Error())

	cfg := WrapConfigurationError(".resterr.yaml", "parse", cause)
	assert.Equal(t, ConfigurationErrorCode, cfg.ErrorCode())
	assert.Equal(t, "parse", cfg.Context()["operation"])
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	require.Nil(t, multi.ErrorOrNil())

	multi.Add(nil)
	multi.Add(NotAnEnum("A", SourceLocation{File: "a.go", Line: 1}, "reason"))
	multi.Add(stderrors.New("plain failure"))

	nested := NewMultipleErrors()
	nested.Add(DuplicateAnnotation("V", SourceLocation{}))
	multi.Add(nested)

	require.Equal(t, 3, multi.Count())
	assert.True(t, multi.HasCode(NotAnEnumCode))
	assert.True(t, multi.HasCode(GenerationErrorCode))
	assert.True(t, multi.HasCode(DuplicateAnnotationCode))
	assert.True(t, stderrors.Is(multi, ErrDuplicateAnnotation))

	msg := multi.Error()
	assert.True(t, strings.HasPrefix(msg, "multiple errors (3 total):"))
	assert.Contains(t, msg, "  2. plain failure")
}
