package emailValidators

import (
	"encoding/json"
	"strings"

	"sellinginfinity/middleware"
	"sellinginfinity/services/mailer"

	"github.com/gofiber/fiber/v2"
)

type TemplateEmailRequest struct {
	Message  mailer.Message
	Provider string
}

// SendTemplateEmail accepts "to" as a single address or a list.
func SendTemplateEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			To           json.RawMessage `json:"to"`
			Subject      string          `json:"subject"`
			HTML         string          `json:"html"`
			TemplateName string          `json:"templateName"`
			Provider     string          `json:"provider"`
		})
		if err := c.BodyParser(body); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request body!")
		}

		to := parseRecipients(body.To)
		if len(to) == 0 || strings.TrimSpace(body.Subject) == "" || strings.TrimSpace(body.HTML) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingField, "Missing required fields: to, subject, html")
		}

		provider := strings.ToLower(strings.TrimSpace(body.Provider))
		switch provider {
		case "", mailer.ProviderResend, mailer.ProviderSendGrid, mailer.ProviderSMTP:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"provider": "Invalid provider! Allowed: resend, sendgrid, smtp",
			})
		}

		c.Locals("validatedEmail", &TemplateEmailRequest{
			Message: mailer.Message{
				To:           to,
				Subject:      strings.TrimSpace(body.Subject),
				HTML:         body.HTML,
				TemplateName: strings.TrimSpace(body.TemplateName),
			},
			Provider: provider,
		})
		return c.Next()
	}
}

func parseRecipients(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var one string
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil
		}
		list = []string{one}
	}

	out := make([]string, 0, len(list))
	for _, addr := range list {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
