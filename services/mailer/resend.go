package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

type Resend struct {
	client *resty.Client
	from   string
}

func NewResend(baseURL, apiKey, from string) *Resend {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &Resend{client: client, from: from}
}

func (r *Resend) Name() string { return ProviderResend }

func (r *Resend) Send(ctx context.Context, msg Message) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"from":    r.from,
			"to":      msg.To,
			"subject": msg.Subject,
			"html":    msg.HTML,
		}).
		SetResult(&out).
		Post("/emails")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return out.ID, nil
}
