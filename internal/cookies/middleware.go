package cookies

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const contextKey = "cookies.parsed"

type Options struct {
	Skipper middleware.Skipper
	// Codec verifies signed cookies. Nil disables signature checks.
	Codec *Codec
}

// Middleware parses the Cookie header once per request.
func Middleware(opts Options) echo.MiddlewareFunc {
	if opts.Skipper == nil {
		opts.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Skipper(c) {
				return next(c)
			}
			if _, ok := c.Get(contextKey).(*Parsed); !ok {
				c.Set(contextKey, Parse(c.Request(), opts.Codec))
			}
			return next(c)
		}
	}
}

// FromContext returns the cookies parsed by Middleware, or an empty set when it did not run.
func FromContext(c echo.Context) *Parsed {
	if p, ok := c.Get(contextKey).(*Parsed); ok {
		return p
	}
	return newParsed()
}
