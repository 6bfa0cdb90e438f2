package generator

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/models"
	"github.com/toyz/resterr/internal/parser"
	"github.com/toyz/resterr/internal/utils"
)

const endpointSource = `package shop

import "net/http"

//rest::error internal_error
type (
	// EndpointError is returned by the widget handlers.
	EndpointError interface {
		rest.Error
	}

	//rest::variant status_code = 200
	FooError struct{}

	//rest::variant status_code = 200
	BarError struct{}

	//rest::variant status_code = http.StatusBadGateway
	UpstreamError struct{ error }

	//rest::variant status_code = http.StatusConflict
	ConflictError struct{ Name string }
)

func (FooError) Error() string         { return "error foo" }
func (BarError) Error() string         { return "error bar" }
func (e *ConflictError) Error() string { return "conflict " + e.Name }
`

func parseSource(t *testing.T, source string) *models.PackageMetadata {
	t.Helper()
	metadata, err := parser.NewParser().ParseSource("/src/shop/errors.go", source)
	require.NoError(t, err)
	require.Empty(t, metadata.Errs)
	return metadata
}

func firstEnum(t *testing.T, source string) *models.EnumDescriptor {
	t.Helper()
	metadata := parseSource(t, source)
	require.NotEmpty(t, metadata.Enums)
	return metadata.Enums[0]
}

// normalize collapses all whitespace so assertions do not depend on gofmt alignment
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func assertContainsCode(t *testing.T, content string, snippets ...string) {
	t.Helper()
	normalized := normalize(content)
	for _, snippet := range snippets {
		assert.Contains(t, normalized, normalize(snippet))
	}
}

// methodsOf parses generated source and lists method names per receiver type
func methodsOf(t *testing.T, content string) map[string][]string {
	t.Helper()
	file, err := goparser.ParseFile(token.NewFileSet(), "gen.go", content, 0)
	require.NoError(t, err, content)

	methods := make(map[string][]string)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil {
			continue
		}
		recv := fn.Recv.List[0].Type
		if star, ok := recv.(*ast.StarExpr); ok {
			recv = star.X
		}
		name := recv.(*ast.Ident).Name
		methods[name] = append(methods[name], fn.Name.Name)
	}
	return methods
}

func TestGenerateEndpointError(t *testing.T) {
	g := NewGenerator()
	file, err := g.Generate(firstEnum(t, endpointSource))
	require.NoError(t, err)

	assert.Equal(t, "EndpointError", file.Enum)
	assert.Equal(t, "shop", file.PackageName)
	assert.Equal(t, "/src/shop/autogen_endpoint_error.go", file.FilePath)
	assert.True(t, strings.HasPrefix(file.Content, utils.GeneratedHeader+"\n"))

	assertContainsCode(t, file.Content,
		`import (
			"errors"
			"fmt"
			"net/http"

			"github.com/getkin/kin-openapi/openapi3"
			"github.com/toyz/resterr/pkg/rest"
		)`,
		`type InternalError struct { error }`,
		`func NewInternalError(err error) InternalError {
			if err == nil { err = errors.New(rest.InternalErrorMessage) }
			return InternalError{error: err}
		}`,
		`func ToEndpointError(err error) EndpointError {
			if err == nil { return nil }
			var target EndpointError
			if errors.As(err, &target) { return target }
			return NewInternalError(err)
		}`,
		`_ EndpointError = FooError{}`,
		`_ EndpointError = (*ConflictError)(nil)`,
		`_ EndpointError = InternalError{}`,
		`const ( endpointErrorFooError = iota endpointErrorBarError endpointErrorUpstreamError endpointErrorConflictError endpointErrorInternalError )`,
		`var endpointErrorStatus = [...]int{
			endpointErrorFooError: 200,
			endpointErrorBarError: 200,
			endpointErrorUpstreamError: http.StatusBadGateway,
			endpointErrorConflictError: http.StatusConflict,
			endpointErrorInternalError: http.StatusInternalServerError,
		}`,
		`endpointErrorInternalError: "InternalError",`,
		`func EndpointErrorCodes() []string { return append([]string(nil), endpointErrorCodes[:]...) }`,
		`return rest.ErrorSchema("EndpointError", endpointErrorCodes[:]...)`,
		`func (e FooError) StatusCode() int { return endpointErrorStatus[endpointErrorFooError] }`,
		`func (e FooError) ErrorCode() string { return endpointErrorCodes[endpointErrorFooError] }`,
		`func (e FooError) ErrorMessage() string { return e.Error() }`,
		`func (e FooError) MarshalJSON() ([]byte, error) { return rest.Marshal(e) }`,
		`func (e FooError) ErrorResponse() rest.Response { return rest.NewResponse(e.StatusCode(), e) }`,
		`func (e FooError) ErrorSchema() *openapi3.Schema { return EndpointErrorSchema() }`,
		`func (e FooError) Format(s fmt.State, verb rune) { rest.Format(s, verb, e.Error(), errors.Unwrap(e)) }`,
		`func (e *ConflictError) StatusCode() int`,
		`func (e UpstreamError) Format(s fmt.State, verb rune) { rest.Format(s, verb, e.Error(), errors.Unwrap(e.error)) }`,
		`func (e UpstreamError) Unwrap() error { return e.error }`,
		`func (e InternalError) ErrorMessage() string { return rest.InternalErrorMessage }`,
		`// StatusCode of ConflictError, a named variant with 1 field, is http.StatusConflict.`,
		`// StatusCode of FooError, a unit variant, is 200.`,
	)

	behaviors := []string{"StatusCode", "ErrorCode", "ErrorMessage", "MarshalJSON", "ErrorResponse", "ErrorSchema", "Format"}
	methods := methodsOf(t, file.Content)
	assert.Equal(t, behaviors, methods["FooError"])
	assert.Equal(t, behaviors, methods["BarError"])
	assert.Equal(t, behaviors, methods["ConflictError"])
	assert.Equal(t, append(behaviors, "Unwrap"), methods["UpstreamError"])
	assert.Equal(t, append(behaviors, "Unwrap"), methods["InternalError"])
}

func TestGenerateIsDeterministic(t *testing.T) {
	desc := firstEnum(t, endpointSource)
	first, err := NewGenerator().Generate(desc)
	require.NoError(t, err)
	second, err := NewGenerator().Generate(desc)
	require.NoError(t, err)
	assert.Equal(t, first.Content, second.Content)
}

func TestBuildImplementation(t *testing.T) {
	parsed := firstEnum(t, endpointSource)
	desc, err := Transform(parsed, parsed.Args)
	require.NoError(t, err)

	impl, err := NewGenerator().BuildImplementation(desc)
	require.NoError(t, err)

	t.Run("status mapping is total", func(t *testing.T) {
		require.Len(t, impl.Status.Entries, len(desc.Variants))
		want := []string{"200", "200", "http.StatusBadGateway", "http.StatusConflict", "http.StatusInternalServerError"}
		for i, entry := range impl.Status.Entries {
			assert.Equal(t, i, entry.Index)
			assert.Equal(t, desc.Variants[i].Name, entry.Variant)
			assert.Equal(t, want[i], entry.Expr.Text)
		}
		assert.Equal(t, "endpointErrorStatus", impl.Status.Table)
	})

	t.Run("serialization gates on the opaque marker", func(t *testing.T) {
		assert.Equal(t, "error_code", impl.Serialization.CodeField)
		assert.Equal(t, "error_message", impl.Serialization.MessageField)
		for _, v := range impl.Serialization.Variants {
			if v.Variant == "InternalError" {
				assert.Equal(t, models.MessageFixed, v.Message)
			} else {
				assert.Equal(t, models.MessageDisplay, v.Message, v.Variant)
			}
			assert.Equal(t, v.Variant, v.Code)
		}
		assert.Equal(t, "rest.InternalErrorMessage", impl.Serialization.FixedMessage)
	})

	t.Run("schema lists every tag once", func(t *testing.T) {
		assert.Equal(t, "EndpointError", impl.Schema.Title)
		assert.Equal(t, []string{"FooError", "BarError", "UpstreamError", "ConflictError", "InternalError"}, impl.Schema.Codes)
		assert.Equal(t, []string{"error_code", "error_message"}, impl.Schema.Required)
	})

	t.Run("chain starts below transparent wrappers", func(t *testing.T) {
		starts := make(map[string]string)
		for _, c := range impl.Chain.Variants {
			starts[c.Variant] = c.Expr
		}
		assert.Equal(t, "errors.Unwrap(e)", starts["FooError"])
		assert.Equal(t, "errors.Unwrap(e)", starts["ConflictError"])
		assert.Equal(t, "errors.Unwrap(e.error)", starts["UpstreamError"])
		assert.Equal(t, "errors.Unwrap(e.error)", starts["InternalError"])
	})

	t.Run("synthetic variant and response", func(t *testing.T) {
		require.NotNil(t, impl.Synthetic)
		assert.Equal(t, "InternalError", impl.Synthetic.Name)
		assert.Equal(t, "ToEndpointError", impl.Converter)
		assert.Equal(t, "application/json", impl.Response.ContentType)
	})
}

func TestInternalErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantStatus string
		wantHTTP   bool
	}{
		{
			name:       "default",
			source:     "package shop\n\n//rest::error internal_error\ntype E interface{ error }\n",
			wantStatus: "E_internal: http.StatusInternalServerError,",
			wantHTTP:   true,
		},
		{
			name:       "explicit expression is kept verbatim",
			source:     "package shop\n\n//rest::error internal_error(status_code = 503)\ntype E interface{ error }\n",
			wantStatus: "E_internal: 503,",
			wantHTTP:   false,
		},
		{
			name:       "http bound to another package",
			source:     "package shop\n\nimport http \"example.com/fasthttp\"\n\n//rest::error internal_error\ntype E interface{ error }\n",
			wantStatus: "E_internal: 500,",
			wantHTTP:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := NewGenerator().Generate(firstEnum(t, tt.source))
			require.NoError(t, err)

			want := strings.Replace(tt.wantStatus, "E_internal", "eInternalError", 1)
			assertContainsCode(t, file.Content, want)
			assert.Equal(t, tt.wantHTTP, strings.Contains(file.Content, `"net/http"`))
			assert.NotContains(t, file.Content, "example.com/fasthttp")
		})
	}
}

func TestStatusExpressionImports(t *testing.T) {
	source := `package shop

import (
	"net/http"

	codes "example.com/shop/statuscodes"
	"example.com/shop/limits/v2"
	"example.com/shop/unused"
)

//rest::error
type (
	E interface{ error }

	//rest::variant status_code = codes.Conflict
	A struct{}

	//rest::variant status_code = limits.Status(http.StatusTooManyRequests)
	B struct{}

	//rest::variant status_code = localTable.Gone
	C struct{}
)
`
	file, err := NewGenerator().Generate(firstEnum(t, source))
	require.NoError(t, err)

	assert.Contains(t, file.Content, `codes "example.com/shop/statuscodes"`)
	assert.Contains(t, file.Content, `"example.com/shop/limits/v2"`)
	assert.Contains(t, file.Content, `"net/http"`)
	assert.NotContains(t, file.Content, "example.com/shop/unused")
	assertContainsCode(t, file.Content, "eC: localTable.Gone,")
}

func TestStatusExpressionImportConflict(t *testing.T) {
	source := `package shop

import rest "example.com/other/rest"

//rest::error
type (
	E interface{ error }

	//rest::variant status_code = rest.NotFound
	A struct{}
)
`
	file, err := NewGenerator().Generate(firstEnum(t, source))
	assert.Nil(t, file)
	assert.ErrorIs(t, err, errors.ErrGeneration)
	assert.Equal(t, 9, errors.LocationOf(err).Line)
}

func TestGenerationErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		target  error
		line    int
		variant string
	}{
		{
			name:    "missing annotation",
			source:  "package x\n\n//rest::error\ntype (\n\tE interface{ error }\n\n\t//rest::variant status_code = 400\n\tA struct{}\n\n\tB struct{}\n)\n",
			target:  errors.ErrMissingAnnotationOnVariant,
			line:    10,
			variant: "B",
		},
		{
			name:    "missing status_code",
			source:  "package x\n\n//rest::error\ntype (\n\tE interface{ error }\n\t//rest::variant\n\tA struct{}\n)\n",
			target:  errors.ErrMissingRequiredKey,
			line:    6,
			variant: "A",
		},
		{
			name:    "unsupported variant key",
			source:  "package x\n\n//rest::error\ntype (\n\tE interface{ error }\n\t//rest::variant status = 400\n\tA struct{}\n)\n",
			target:  errors.ErrUnsupportedAttributeKey,
			line:    6,
			variant: "A",
		},
		{
			name:    "malformed expression",
			source:  "package x\n\n//rest::error\ntype (\n\tE interface{ error }\n\t//rest::variant status_code = 400 +\n\tA struct{}\n)\n",
			target:  errors.ErrSyntax,
			line:    6,
			variant: "A",
		},
		{
			name:    "two annotations",
			source:  "package x\n\n//rest::error\ntype (\n\tE interface{ error }\n\t//rest::variant status_code = 400\n\t//rest::variant status_code = 401\n\tA struct{}\n)\n",
			target:  errors.ErrDuplicateAnnotation,
			line:    7,
			variant: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := NewGenerator().Generate(firstEnum(t, tt.source))
			assert.Nil(t, file, "no partial output")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.line, errors.LocationOf(err).Line)
			assert.Contains(t, err.Error(), "variant '"+tt.variant+"'")
		})
	}
}

func TestGenerateNonEnumProducesNoOutput(t *testing.T) {
	metadata := parseSource(t, "package x\n\n//rest::error internal_error\ntype Plain struct{}\n")
	files, err := NewGenerator().GeneratePackage(metadata)
	assert.Empty(t, files)
	assert.ErrorIs(t, err, errors.ErrNotAnEnum)
}

func TestGeneratePackageKeepsEnumsIndependent(t *testing.T) {
	source := `package x

//rest::error
type (
	Good interface{ error }

	//rest::variant status_code = 404
	Missing struct{}
)

//rest::error
type (
	Bad interface{ error }

	Unannotated struct{}
)
`
	files, err := NewGenerator().GeneratePackage(parseSource(t, source))
	require.Len(t, files, 1)
	assert.Equal(t, "Good", files[0].Enum)

	var multi *errors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, 1, multi.Count())
	assert.True(t, multi.HasCode(errors.MissingAnnotationOnVariantCode))
}

func TestGeneratePackageOutputCollision(t *testing.T) {
	source := "package x\n\n//rest::error\ntype APIError interface{ error }\n\n//rest::error\ntype ApiError interface{ error }\n"
	files, err := NewGenerator().GeneratePackage(parseSource(t, source))
	assert.Len(t, files, 1)
	assert.ErrorIs(t, err, errors.ErrGeneration)
	assert.ErrorContains(t, err, "autogen_api_error.go")
}

func TestGeneratePackageIdentifierCollision(t *testing.T) {
	source := `package x

//rest::error
type (
	FooBar interface{ error }

	//rest::variant status_code = 400
	Baz struct{}
)

//rest::error
type (
	Foo interface{ error }

	//rest::variant status_code = 409
	BarBaz struct{}
)
`
	files, err := NewGenerator().GeneratePackage(parseSource(t, source))
	require.Len(t, files, 1)
	assert.Equal(t, "FooBar", files[0].Enum)
	assert.Contains(t, files[0].Declares, "fooBarBaz")

	var multi *errors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, 1, multi.Count())
	assert.ErrorIs(t, err, errors.ErrGeneration)
	assert.ErrorContains(t, err, "FooBar and Foo would both declare fooBarBaz")
	loc := multi.Errors[0].Location()
	assert.Equal(t, "/src/shop/errors.go", loc.File)
	assert.Equal(t, 11, loc.Line)
}

func TestGenerateEnumWithoutVariants(t *testing.T) {
	file, err := NewGenerator().Generate(firstEnum(t, "package x\n\n//rest::error\ntype Empty interface{ error }\n"))
	require.NoError(t, err)

	assertContainsCode(t, file.Content,
		`func EmptyCodes() []string { return []string{} }`,
		`return rest.ErrorSchema("Empty")`,
	)
	assert.NotContains(t, file.Content, `"errors"`)
	assert.NotContains(t, file.Content, `"fmt"`)
	assert.Empty(t, methodsOf(t, file.Content))
}

func TestGenerateWithOptions(t *testing.T) {
	g := NewGeneratorWithOptions(Options{
		OutputPrefix:    "zz_",
		InternalMessage: "something went wrong",
	})
	file, err := g.Generate(firstEnum(t, endpointSource))
	require.NoError(t, err)

	assert.Equal(t, "/src/shop/zz_endpoint_error.go", file.FilePath)
	assertContainsCode(t, file.Content,
		`func (e InternalError) ErrorMessage() string { return "something went wrong" }`,
		`if err == nil { err = errors.New("something went wrong") }`,
	)
}

func TestGenerateRespectsUserUnwrap(t *testing.T) {
	source := `package x

//rest::error
type (
	E interface{ error }

	//rest::variant status_code = 502
	Upstream struct{ error }
)

func (u Upstream) Unwrap() error { return u.error }
`
	file, err := NewGenerator().Generate(firstEnum(t, source))
	require.NoError(t, err)
	assert.NotContains(t, methodsOf(t, file.Content)["Upstream"], "Unwrap")
}

func TestVariantNameCollidesWithTable(t *testing.T) {
	source := "package x\n\n//rest::error\ntype (\n\tE interface{ error }\n\t//rest::variant status_code = 400\n\tStatus struct{}\n)\n"
	_, err := NewGenerator().Generate(firstEnum(t, source))
	assert.ErrorIs(t, err, errors.ErrGeneration)
	assert.ErrorContains(t, err, "eStatus")
}

func TestOutputPath(t *testing.T) {
	g := NewGenerator()
	tests := map[string]string{
		"EndpointError":   "autogen_endpoint_error.go",
		"APIError":        "autogen_api_error.go",
		"HTTPServerError": "autogen_http_server_error.go",
	}
	for name, want := range tests {
		desc := &models.EnumDescriptor{Name: name, FilePath: "/src/shop/errors.go"}
		assert.Equal(t, "/src/shop/"+want, g.OutputPath(desc))
	}
}
