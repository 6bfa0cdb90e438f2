package adapters

import (
	"github.com/gofiber/fiber/v2"

	"github.com/toyz/resterr/pkg/rest"
)

// FiberErrorHandler returns a fiber.ErrorHandler for fiber.Config. Errors
// outside any enum go to fallback when it is set.
//
//	app := fiber.New(fiber.Config{
//		ErrorHandler: adapters.FiberErrorHandler(fiber.DefaultErrorHandler),
//	})
func FiberErrorHandler(fallback fiber.ErrorHandler) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if !classified(err) && fallback != nil {
			return fallback(c, err)
		}
		resp := rest.Respond(err)
		c.Set(fiber.HeaderContentType, rest.ContentType)
		return c.Status(resp.StatusCode).Send(resp.Body)
	}
}
