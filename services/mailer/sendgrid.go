package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridHost = "https://api.sendgrid.com"

type SendGrid struct {
	host     string
	apiKey   string
	fromName string
	from     string
}

// NewSendGrid targets host, or the public SendGrid API when host is empty.
func NewSendGrid(host, apiKey, fromName, from string) *SendGrid {
	if host == "" {
		host = sendGridHost
	}
	return &SendGrid{host: host, apiKey: apiKey, fromName: fromName, from: from}
}

func (s *SendGrid) Name() string { return ProviderSendGrid }

func (s *SendGrid) Send(ctx context.Context, msg Message) (string, error) {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(s.fromName, s.from))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail("", to))
	}
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/html", msg.HTML))

	request := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(m)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, resp.Body)
	}
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
