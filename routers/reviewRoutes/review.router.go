package reviewRoutes

import (
	controller "sellinginfinity/controllers/review"
	validator "sellinginfinity/validators/review"

	"github.com/gofiber/fiber/v2"
)

// SetupReviewRoutes registers the public testimonial endpoints.
func SetupReviewRoutes(app *fiber.App, ctl *controller.Controller, rateLimit fiber.Handler) {
	reviews := app.Group("/api/reviews")

	reviews.Post("/submit", rateLimit, validator.SubmitReview(), ctl.Submit)
	reviews.Get("/approved", validator.ApprovedList(), ctl.Approved)
}
