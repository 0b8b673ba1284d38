package reviewValidators

import (
	"math"
	"strconv"
	"strings"

	"sellinginfinity/middleware"
	"sellinginfinity/services/review"

	"github.com/gofiber/fiber/v2"
)

type ActionRequest struct {
	ReviewID   string        `json:"reviewId"`
	Action     review.Action `json:"-"`
	RawAction  string        `json:"action"`
	AdminNotes string        `json:"adminNotes"`
}

type PageQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// SubmitReview parses the public submission body. Field rules are
// enforced by the review service so every client gets the same codes.
func SubmitReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			Name              string      `json:"name"`
			Email             string      `json:"email"`
			Rating            interface{} `json:"rating"`
			Review            string      `json:"review"`
			YearsOfExperience interface{} `json:"yearsOfExperience"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request body!")
		}

		req := &review.SubmitRequest{
			Name:   body.Name,
			Email:  body.Email,
			Review: body.Review,
		}
		if n, ok := toInt(body.Rating); ok {
			req.Rating = n
		} else if body.Rating != nil && body.Rating != "" {
			// present but not a number, e.g. "five"
			req.Rating = -1
		}
		if n, ok := toInt(body.YearsOfExperience); ok && n >= 0 {
			req.YearsOfExperience = &n
		}

		c.Locals("validatedReview", req)
		return c.Next()
	}
}

func ReviewAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ActionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		reqData.ReviewID = strings.TrimSpace(reqData.ReviewID)
		if reqData.ReviewID == "" {
			errors["reviewId"] = "reviewId is required!"
		}

		action, err := review.ParseAction(reqData.RawAction)
		if err != nil {
			errors["action"] = "Invalid action! Allowed: approve, reject, delete"
		}
		reqData.Action = action
		reqData.AdminNotes = strings.TrimSpace(reqData.AdminNotes)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReviewAction", reqData)
		return c.Next()
	}
}

// ApprovedList reads limit and offset; bad values fall back to defaults.
func ApprovedList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &PageQuery{
			Limit:  c.QueryInt("limit", review.DefaultLimit),
			Offset: c.QueryInt("offset", 0),
		}
		c.Locals("validatedPage", reqData)
		return c.Next()
	}
}

func ModerationList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status")
		if _, err := review.ParseStatus(status); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Invalid status! Allowed: pending, approved, rejected, all",
			})
		}
		c.Locals("validatedStatus", status)
		return c.Next()
	}
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}
