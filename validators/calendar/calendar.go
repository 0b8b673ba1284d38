package calendarValidators

import (
	"regexp"
	"strings"
	"time"

	"sellinginfinity/middleware"
	"sellinginfinity/services/calendar"

	"github.com/gofiber/fiber/v2"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func Slot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(calendar.SlotInput)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		reqData.Date = strings.TrimSpace(reqData.Date)
		if _, err := time.Parse(time.DateOnly, reqData.Date); err != nil {
			errors["date"] = "date must be in YYYY-MM-DD format!"
		}
		reqData.StartTime = strings.TrimSpace(reqData.StartTime)
		if !clockPattern.MatchString(reqData.StartTime) {
			errors["startTime"] = "startTime must be in HH:MM format!"
		}
		reqData.EndTime = strings.TrimSpace(reqData.EndTime)
		if !clockPattern.MatchString(reqData.EndTime) {
			errors["endTime"] = "endTime must be in HH:MM format!"
		}
		if len(reqData.Reason) > 255 {
			errors["reason"] = "reason must not exceed 255 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSlot", reqData)
		return c.Next()
	}
}

func SlotID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Params("id")) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"id": "Slot id is required!"})
		}
		return c.Next()
	}
}

func Week() fiber.Handler {
	return func(c *fiber.Ctx) error {
		week := strings.TrimSpace(c.Query("week"))
		if week != "" {
			if _, err := time.Parse(time.DateOnly, week); err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{"week": "week must be in YYYY-MM-DD format!"})
			}
		}
		c.Locals("validatedWeek", week)
		return c.Next()
	}
}
