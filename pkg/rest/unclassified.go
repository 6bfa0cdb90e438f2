package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Unclassified is an error that does not belong to any generated enum.
// It behaves like a synthetic InternalError variant.
type Unclassified struct {
	err error
}

var _ Error = Unclassified{}

func (u Unclassified) Error() string {
	if u.err == nil {
		return "unclassified error"
	}
	return u.err.Error()
}

func (u Unclassified) Unwrap() error { return u.err }

func (Unclassified) StatusCode() int { return http.StatusInternalServerError }

func (Unclassified) ErrorCode() string { return InternalErrorCode }

func (Unclassified) ErrorMessage() string { return InternalErrorMessage }

func (u Unclassified) MarshalJSON() ([]byte, error) { return Marshal(u) }

func (u Unclassified) ErrorResponse() Response { return NewResponse(u.StatusCode(), u) }

func (Unclassified) ErrorSchema() *openapi3.Schema {
	return ErrorSchema("Unclassified", InternalErrorCode)
}

func (u Unclassified) Format(s fmt.State, verb rune) {
	Format(s, verb, u.Error(), errors.Unwrap(u.err))
}
