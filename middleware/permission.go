package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin allows the request only when the authenticated email is
// on the admin list. It must run after JWTMiddleware.
func RequireAdmin(adminEmails []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		email, _ := c.Locals("email").(string)
		if email == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Unauthorized: email not found in token")
		}
		if _, ok := allowed[email]; !ok {
			return ErrorResponse(c, fiber.StatusForbidden, CodeForbidden, "You do not have permission to access this resource!")
		}
		return c.Next()
	}
}
