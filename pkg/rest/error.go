// Package rest holds the runtime contracts that resterr-generated error enums
// implement, plus the helpers the generated code calls into.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// InternalErrorMessage is the error_message of opaque variants. The wrapped
// cause is never sent to clients.
const InternalErrorMessage = "internal server error, check server logs for more information"

// InternalErrorCode is the tag of the synthetic catch-all variant.
const InternalErrorCode = "InternalError"

// Wire field names, in serialization order.
const (
	CodeField    = "error_code"
	MessageField = "error_message"
)

// StatusClassifier maps an error to an HTTP status code.
type StatusClassifier interface {
	StatusCode() int
}

// Serializable exposes the two values of the wire format.
type Serializable interface {
	ErrorCode() string
	ErrorMessage() string
}

// StructuredSerializer encodes an error as {"error_code", "error_message"}.
type StructuredSerializer interface {
	Serializable
	json.Marshaler
}

// ResponseConverter turns an error into a complete HTTP response.
type ResponseConverter interface {
	ErrorResponse() Response
}

// SchemaDescriptor describes the serialized shape of an error enum.
type SchemaDescriptor interface {
	ErrorSchema() *openapi3.Schema
}

// ChainFormatter prints the cause chain for %+v.
type ChainFormatter interface {
	fmt.Formatter
}

// Error is implemented by every variant of a generated error enum.
type Error interface {
	error
	StatusClassifier
	StructuredSerializer
	ResponseConverter
	SchemaDescriptor
	ChainFormatter
}

// From returns the first Error in err's chain. Any other non-nil error is
// wrapped as Unclassified so it is still answered with a generic 500.
func From(err error) Error {
	if err == nil {
		return nil
	}
	var restErr Error
	if errors.As(err, &restErr) {
		return restErr
	}
	return Unclassified{err: err}
}
