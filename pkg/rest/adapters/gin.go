package adapters

import (
	"github.com/gin-gonic/gin"

	"github.com/toyz/resterr/pkg/rest"
)

// GinErrorMiddleware writes the most recent rest.Error recorded with c.Error
// once the handler chain returns. When no enum error was recorded, the last
// plain error is answered as an opaque 500.
func GinErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		var target error
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if classified(c.Errors[i].Err) {
				target = c.Errors[i].Err
				break
			}
		}
		if target == nil {
			target = c.Errors.Last().Err
		}

		resp := rest.Respond(target)
		c.Data(resp.StatusCode, rest.ContentType, resp.Body)
	}
}

// GinAbort records err for GinErrorMiddleware and stops the handler chain.
func GinAbort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
