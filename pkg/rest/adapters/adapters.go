// Package adapters plugs generated error enums into Echo, Gin and Fiber.
// Every adapter answers a handler error with the error's ErrorResponse.
package adapters

import (
	"errors"

	"github.com/toyz/resterr/pkg/rest"
)

// classified reports whether err carries a generated rest.Error.
func classified(err error) bool {
	var restErr rest.Error
	return errors.As(err, &restErr)
}
