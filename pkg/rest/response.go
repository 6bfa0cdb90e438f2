package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// ContentType of every error response body.
const ContentType = "application/json"

// Response is a framework independent HTTP error response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

var fallbackBody = []byte(`{"error_code":"InternalError","error_message":"` + InternalErrorMessage + `"}`)

// NewResponse pairs a status code with the structured serialization of body.
func NewResponse(statusCode int, body Serializable) Response {
	payload, err := Marshal(body)
	if err != nil {
		statusCode = http.StatusInternalServerError
		payload = fallbackBody
	}
	header := make(http.Header)
	header.Set("Content-Type", ContentType)
	return Response{
		StatusCode: statusCode,
		Header:     header,
		Body:       payload,
	}
}

// Write sends the response to w.
func (r Response) Write(w http.ResponseWriter) error {
	for key, values := range r.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(r.StatusCode)
	_, err := w.Write(r.Body)
	return err
}

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for server errors. nil restores slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func currentLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Respond converts err with From and logs server errors with their full cause
// chain. The chain never reaches the response body.
func Respond(err error) Response {
	restErr := From(err)
	if restErr == nil {
		return Response{StatusCode: http.StatusNoContent, Header: make(http.Header)}
	}
	resp := restErr.ErrorResponse()
	if resp.StatusCode >= http.StatusInternalServerError {
		currentLogger().Error("request failed",
			slog.Int("status", resp.StatusCode),
			slog.String(CodeField, restErr.ErrorCode()),
			slog.String("chain", fmt.Sprintf("%+v", restErr)),
		)
	}
	return resp
}

// WriteError converts err and writes it to w.
func WriteError(w http.ResponseWriter, err error) error {
	return Respond(err).Write(w)
}
