package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverride rewrites a POST request into the method named by the
// "_method" query or form parameter. Browser forms can only issue GET and
// POST, so the edit and delete forms tunnel PUT/DELETE this way
// (e.g. action="/products/1?_method=DELETE").
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost {
			override := c.Query("_method")
			if override == "" {
				override = c.FormValue("_method")
			}
			switch strings.ToUpper(override) {
			case fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
				c.Method(strings.ToUpper(override))
			}
		}
		return c.Next()
	}
}
