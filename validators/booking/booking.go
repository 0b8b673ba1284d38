package bookingValidators

import (
	"strings"

	"sellinginfinity/middleware"

	"github.com/gofiber/fiber/v2"
)

func UserBookingQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Query("userId"))
		if userID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingField, "User ID is required")
		}
		c.Locals("validatedUserId", userID)
		return c.Next()
	}
}
