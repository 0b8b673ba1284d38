package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Error codes returned alongside failed responses.
const (
	CodeMissingField        = "MISSING_FIELD"
	CodeRatingOutOfRange    = "RATING_OUT_OF_RANGE"
	CodeInvalidEmail        = "INVALID_EMAIL"
	CodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	CodeNotFound            = "NOT_FOUND"
	CodeStoreUnavailable    = "STORE_UNAVAILABLE"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternal            = "INTERNAL_ERROR"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse is JsonResponse for failures, carrying a machine readable code.
func ErrorResponse(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  false,
		"message": message,
		"data":    nil,
		"code":    code,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status":  false,
		"message": "Validation failed!",
		"data":    errors,
		"code":    CodeInvalidRequest,
	})
}

// ErrorHandler renders errors that escape handlers in the JSON envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
			return ErrorResponse(c, code, CodeInternal, "Internal server error")
		}
		if code == fiber.StatusNotFound {
			return ErrorResponse(c, code, CodeNotFound, err.Error())
		}
		return ErrorResponse(c, code, CodeInvalidRequest, err.Error())
	}
}
