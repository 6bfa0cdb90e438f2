package adapters

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/resterr/pkg/rest"
)

// notFound is a minimal single-variant enum.
type notFound struct{ ID string }

func (e notFound) Error() string                 { return fmt.Sprintf("widget %s not found", e.ID) }
func (e notFound) StatusCode() int               { return http.StatusNotFound }
func (e notFound) ErrorCode() string             { return "NotFound" }
func (e notFound) ErrorMessage() string          { return e.Error() }
func (e notFound) MarshalJSON() ([]byte, error)  { return rest.Marshal(e) }
func (e notFound) ErrorResponse() rest.Response  { return rest.NewResponse(e.StatusCode(), e) }
func (e notFound) ErrorSchema() *openapi3.Schema { return rest.ErrorSchema("lookupError", "NotFound") }
func (e notFound) Format(s fmt.State, verb rune) { rest.Format(s, verb, e.Error(), nil) }

var _ rest.Error = notFound{}

const notFoundBody = `{"error_code":"NotFound","error_message":"widget 42 not found"}`

var internalBody = `{"error_code":"InternalError","error_message":"` + rest.InternalErrorMessage + `"}`

func TestClassified(t *testing.T) {
	assert.True(t, classified(notFound{}))
	assert.True(t, classified(fmt.Errorf("wrap: %w", notFound{})))
	assert.False(t, classified(errors.New("plain")))
}

func readBody(t *testing.T, r io.Reader) string {
	t.Helper()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}
