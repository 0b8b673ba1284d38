package userRoutes

import (
	bookingController "sellinginfinity/controllers/booking"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, bookings *bookingController.Controller, auth fiber.Handler) {
	userGroup := app.Group("/api/user", auth)

	userGroup.Get("/bookings", bookings.MyBookings)
}
