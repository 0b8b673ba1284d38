package bookingControllers

import (
	"sellinginfinity/middleware"
	"sellinginfinity/services/booking"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	bookings *booking.Service
	log      *zap.Logger
}

func NewController(svc *booking.Service, log *zap.Logger) *Controller {
	return &Controller{bookings: svc, log: log}
}

func (ctl *Controller) UserBookingData(c *fiber.Ctx) error {
	userID, _ := c.Locals("validatedUserId").(string)

	b, err := ctl.bookings.LatestForUser(c.UserContext(), userID)
	if err != nil {
		ctl.log.Error("booking lookup failed", zap.String("user_id", userID), zap.Error(err))
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "Failed to fetch booking data")
	}
	if b == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No booking found for this user", fiber.Map{
			"bookingData": nil,
			"message":     "No booking found for this user",
		})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking data fetched successfully", fiber.Map{
		"bookingData": b,
		"message":     "Booking data fetched successfully",
	})
}

func (ctl *Controller) MyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.CodeUnauthorized, "Unauthorized!")
	}

	list, err := ctl.bookings.ListForUser(c.UserContext(), userID)
	if err != nil {
		ctl.log.Error("booking list failed", zap.String("user_id", userID), zap.Error(err))
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "Failed to fetch bookings")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookings fetched successfully", list)
}
