package adminRoutes

import (
	bookingController "sellinginfinity/controllers/booking"
	calendarController "sellinginfinity/controllers/calendar"
	emailController "sellinginfinity/controllers/email"
	productController "sellinginfinity/controllers/product"
	reviewController "sellinginfinity/controllers/review"
	bookingValidator "sellinginfinity/validators/booking"
	calendarValidator "sellinginfinity/validators/calendar"
	emailValidator "sellinginfinity/validators/email"
	productValidator "sellinginfinity/validators/product"
	reviewValidator "sellinginfinity/validators/review"

	"github.com/gofiber/fiber/v2"
)

type Controllers struct {
	Reviews  *reviewController.Controller
	Calendar *calendarController.Controller
	Email    *emailController.Controller
	Products *productController.Controller
	Bookings *bookingController.Controller
}

// SetupAdminRoutes registers the operator endpoints behind guards.
func SetupAdminRoutes(app *fiber.App, ctl Controllers, guards ...fiber.Handler) {
	admin := app.Group("/api/admin", guards...)

	admin.Get("/reviews", reviewValidator.ModerationList(), ctl.Reviews.List)
	admin.Get("/reviews/stats", ctl.Reviews.Stats)
	admin.Get("/reviews/export", reviewValidator.ModerationList(), ctl.Reviews.Export)
	admin.Post("/reviews/action", reviewValidator.ReviewAction(), ctl.Reviews.Action)

	admin.Get("/calendar-slots", calendarValidator.Week(), ctl.Calendar.Week)
	admin.Post("/calendar-slots", calendarValidator.Slot(), ctl.Calendar.Block)
	admin.Put("/calendar-slots/:id", calendarValidator.SlotID(), calendarValidator.Slot(), ctl.Calendar.Update)
	admin.Delete("/calendar-slots/:id", calendarValidator.SlotID(), ctl.Calendar.Delete)

	admin.Post("/send-template-email", emailValidator.SendTemplateEmail(), ctl.Email.SendTemplate)

	admin.Post("/upload-product-pdf", productValidator.UploadPDF(), ctl.Products.UploadPDF)
	admin.Get("/get-product-pdf-url", productValidator.PDFURL(), ctl.Products.PDFURL)

	admin.Get("/user-booking-data", bookingValidator.UserBookingQuery(), ctl.Bookings.UserBookingData)
}
