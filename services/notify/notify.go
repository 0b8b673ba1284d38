package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"sellinginfinity/config"
	"sellinginfinity/services/mailer"
	"sellinginfinity/services/review"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Webhook posts a JSON announcement of every new review to an operator URL.
type Webhook struct {
	client *resty.Client
	url    string
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{client: resty.New().SetTimeout(timeout), url: url}
}

type webhookPayload struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    webhookData `json:"data"`
}

type webhookData struct {
	ReviewID string `json:"reviewId"`
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Review   string `json:"review"`
}

func (w *Webhook) Notify(ctx context.Context, e review.Event) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{
			Type:    "new_testimonial",
			Message: fmt.Sprintf("New testimonial submitted by %s", e.Name),
			Data:    webhookData{ReviewID: e.ReviewID, Name: e.Name, Rating: e.Rating, Review: e.Review},
		}).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode())
	}
	return nil
}

// Sender is the part of the mailer the email notifier needs.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message, provider string) (*mailer.Result, error)
}

// Email mails the operator about every new review.
type Email struct {
	sender  Sender
	to      string
	siteURL string
}

func NewEmail(sender Sender, to, siteURL string) *Email {
	return &Email{sender: sender, to: to, siteURL: strings.TrimRight(siteURL, "/")}
}

func (n *Email) Notify(ctx context.Context, e review.Event) error {
	body := fmt.Sprintf(`<p>A new testimonial is waiting for moderation.</p>
<div class="info-box">
	<p><strong>Name:</strong> %s<br><strong>Email:</strong> %s<br><strong>Rating:</strong> %s</p>
	<p>%s</p>
</div>
<a class="btn" href="%s/admin/reviews">Review submissions</a>`,
		html.EscapeString(e.Name), html.EscapeString(e.Email), strings.Repeat("&#9733;", e.Rating),
		html.EscapeString(e.Review), n.siteURL)

	_, err := n.sender.Send(ctx, mailer.Message{
		To:           []string{n.to},
		Subject:      fmt.Sprintf("New testimonial from %s (%d/5)", e.Name, e.Rating),
		HTML:         mailer.Wrap("New testimonial", body),
		TemplateName: "new_testimonial",
	}, "")
	return err
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []review.Notifier

func (m Multi) Notify(ctx context.Context, e review.Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Notify(context.Context, review.Event) error { return nil }

// FromConfig assembles the notifiers enabled by cfg.
func FromConfig(cfg config.NotifyConfig, m *mailer.Mailer, log *zap.Logger) review.Notifier {
	var out Multi
	if cfg.WebhookURL != "" {
		out = append(out, NewWebhook(cfg.WebhookURL, 10*time.Second))
	}
	if cfg.AdminEmail != "" && m != nil && m.Configured() {
		out = append(out, NewEmail(m, cfg.AdminEmail, cfg.SiteBaseURL))
	}
	switch len(out) {
	case 0:
		log.Info("no review notifier configured")
		return Nop{}
	case 1:
		return out[0]
	}
	return out
}
