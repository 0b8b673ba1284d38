package emailControllers

import (
	"errors"

	"sellinginfinity/middleware"
	"sellinginfinity/services/mailer"
	emailValidators "sellinginfinity/validators/email"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	mailer *mailer.Mailer
}

func NewController(m *mailer.Mailer) *Controller {
	return &Controller{mailer: m}
}

func (ctl *Controller) SendTemplate(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedEmail").(*emailValidators.TemplateEmailRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}

	res, err := ctl.mailer.Send(c.UserContext(), req.Message, req.Provider)
	switch {
	case errors.Is(err, mailer.ErrNotConfigured):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, middleware.CodeInternal,
			"Email service not configured. Set RESEND_API_KEY, SENDGRID_API_KEY or SMTP credentials.")
	case errors.Is(err, mailer.ErrInvalidMessage):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingField, err.Error())
	case err != nil:
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, middleware.CodeInternal, "Failed to send email: "+err.Error())
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email sent successfully", res)
}
