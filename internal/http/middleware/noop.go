package middleware

import "github.com/gofiber/fiber/v2"

// Noop passes the request straight through. Placeholder for middleware slots
// that are conditionally disabled.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
