package adapters

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/resterr/pkg/rest"
)

// EchoErrorHandler returns an echo.HTTPErrorHandler that writes rest.Error
// responses. Errors outside any enum go to fallback when it is set, otherwise
// they are answered as an opaque 500.
//
//	e := echo.New()
//	e.HTTPErrorHandler = adapters.EchoErrorHandler(e.DefaultHTTPErrorHandler)
func EchoErrorHandler(fallback echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if !classified(err) && fallback != nil {
			fallback(err, c)
			return
		}
		resp := rest.Respond(err)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.StatusCode)
			return
		}
		_ = c.Blob(resp.StatusCode, rest.ContentType, resp.Body)
	}
}
