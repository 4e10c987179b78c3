package middleware

import (
	"github.com/gofiber/fiber/v2"

	"dayflow/pkg/paseto"
)

func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*paseto.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or session data is corrupt"})
		}

		if claims.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied. Admin privileges are required"})
		}

		return c.Next()
	}
}
