package rest_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/toyz/resterr/pkg/rest"
)

// The enum below has the same shape as a generated file for:
//
//	//rest::error internal_error
//	type (
//		EndpointError interface{ rest.Error }
//		//rest::variant status_code = 200
//		FooError struct{}
//		//rest::variant status_code = 200
//		BarError struct{}
//		//rest::variant status_code = http.StatusBadGateway
//		UpstreamError struct{ error }
//		//rest::variant status_code = http.StatusConflict
//		ConflictError struct{ Name string }
//	)

type (
	EndpointError interface {
		rest.Error
	}

	FooError      struct{}
	BarError      struct{}
	UpstreamError struct{ error }
	ConflictError struct{ Name string }
)

func (FooError) Error() string         { return "error foo" }
func (BarError) Error() string         { return "error bar" }
func (e *ConflictError) Error() string { return fmt.Sprintf("widget %q already exists", e.Name) }

type InternalError struct {
	error
}

func NewInternalError(err error) InternalError {
	if err == nil {
		err = errors.New(rest.InternalErrorMessage)
	}
	return InternalError{error: err}
}

func ToEndpointError(err error) EndpointError {
	if err == nil {
		return nil
	}
	var target EndpointError
	if errors.As(err, &target) {
		return target
	}
	return NewInternalError(err)
}

var (
	_ EndpointError = FooError{}
	_ EndpointError = BarError{}
	_ EndpointError = UpstreamError{}
	_ EndpointError = (*ConflictError)(nil)
	_ EndpointError = InternalError{}
)

const (
	endpointErrorFooError = iota
	endpointErrorBarError
	endpointErrorUpstreamError
	endpointErrorConflictError
	endpointErrorInternalError
)

var endpointErrorStatus = [...]int{
	endpointErrorFooError:      200,
	endpointErrorBarError:      200,
	endpointErrorUpstreamError: http.StatusBadGateway,
	endpointErrorConflictError: http.StatusConflict,
	endpointErrorInternalError: http.StatusInternalServerError,
}

var endpointErrorCodes = [...]string{
	endpointErrorFooError:      "FooError",
	endpointErrorBarError:      "BarError",
	endpointErrorUpstreamError: "UpstreamError",
	endpointErrorConflictError: "ConflictError",
	endpointErrorInternalError: "InternalError",
}

func EndpointErrorCodes() []string {
	return append([]string(nil), endpointErrorCodes[:]...)
}

func EndpointErrorSchema() *openapi3.Schema {
	return rest.ErrorSchema("EndpointError", endpointErrorCodes[:]...)
}

func (e FooError) StatusCode() int               { return endpointErrorStatus[endpointErrorFooError] }
func (e FooError) ErrorCode() string             { return endpointErrorCodes[endpointErrorFooError] }
func (e FooError) ErrorMessage() string          { return e.Error() }
func (e FooError) MarshalJSON() ([]byte, error)  { return rest.Marshal(e) }
func (e FooError) ErrorResponse() rest.Response  { return rest.NewResponse(e.StatusCode(), e) }
func (e FooError) ErrorSchema() *openapi3.Schema { return EndpointErrorSchema() }
func (e FooError) Format(s fmt.State, verb rune) { rest.Format(s, verb, e.Error(), errors.Unwrap(e)) }

func (e BarError) StatusCode() int               { return endpointErrorStatus[endpointErrorBarError] }
func (e BarError) ErrorCode() string             { return endpointErrorCodes[endpointErrorBarError] }
func (e BarError) ErrorMessage() string          { return e.Error() }
func (e BarError) MarshalJSON() ([]byte, error)  { return rest.Marshal(e) }
func (e BarError) ErrorResponse() rest.Response  { return rest.NewResponse(e.StatusCode(), e) }
func (e BarError) ErrorSchema() *openapi3.Schema { return EndpointErrorSchema() }
func (e BarError) Format(s fmt.State, verb rune) { rest.Format(s, verb, e.Error(), errors.Unwrap(e)) }

func (e UpstreamError) StatusCode() int               { return endpointErrorStatus[endpointErrorUpstreamError] }
func (e UpstreamError) ErrorCode() string             { return endpointErrorCodes[endpointErrorUpstreamError] }
func (e UpstreamError) ErrorMessage() string          { return e.Error() }
func (e UpstreamError) MarshalJSON() ([]byte, error)  { return rest.Marshal(e) }
func (e UpstreamError) ErrorResponse() rest.Response  { return rest.NewResponse(e.StatusCode(), e) }
func (e UpstreamError) ErrorSchema() *openapi3.Schema { return EndpointErrorSchema() }
func (e UpstreamError) Format(s fmt.State, verb rune) {
	rest.Format(s, verb, e.Error(), errors.Unwrap(e.error))
}

func (e UpstreamError) Unwrap() error { return e.error }

func (e *ConflictError) StatusCode() int               { return endpointErrorStatus[endpointErrorConflictError] }
func (e *ConflictError) ErrorCode() string             { return endpointErrorCodes[endpointErrorConflictError] }
func (e *ConflictError) ErrorMessage() string          { return e.Error() }
func (e *ConflictError) MarshalJSON() ([]byte, error)  { return rest.Marshal(e) }
func (e *ConflictError) ErrorResponse() rest.Response  { return rest.NewResponse(e.StatusCode(), e) }
func (e *ConflictError) ErrorSchema() *openapi3.Schema { return EndpointErrorSchema() }
func (e *ConflictError) Format(s fmt.State, verb rune) {
	rest.Format(s, verb, e.Error(), errors.Unwrap(e))
}

func (e InternalError) StatusCode() int               { return endpointErrorStatus[endpointErrorInternalError] }
func (e InternalError) ErrorCode() string             { return endpointErrorCodes[endpointErrorInternalError] }
func (e InternalError) ErrorMessage() string          { return rest.InternalErrorMessage }
func (e InternalError) MarshalJSON() ([]byte, error)  { return rest.Marshal(e) }
func (e InternalError) ErrorResponse() rest.Response  { return rest.NewResponse(e.StatusCode(), e) }
func (e InternalError) ErrorSchema() *openapi3.Schema { return EndpointErrorSchema() }
func (e InternalError) Format(s fmt.State, verb rune) {
	rest.Format(s, verb, e.Error(), errors.Unwrap(e.error))
}

func (e InternalError) Unwrap() error { return e.error }
