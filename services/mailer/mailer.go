package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sellinginfinity/config"

	"go.uber.org/zap"
)

const (
	ProviderResend   = "resend"
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"

	sendTimeout = 20 * time.Second
)

var (
	ErrNotConfigured  = errors.New("email service not configured")
	ErrInvalidMessage = errors.New("email requires recipients, subject and html")
)

type Message struct {
	To           []string
	Subject      string
	HTML         string
	TemplateName string
}

type Result struct {
	MessageID    string `json:"messageId"`
	Provider     string `json:"provider"`
	TemplateName string `json:"templateName"`
}

// Provider delivers a single message and returns the provider's message id.
type Provider interface {
	Name() string
	Send(ctx context.Context, msg Message) (string, error)
}

type Mailer struct {
	resend   Provider
	sendgrid Provider
	smtp     Provider
	log      *zap.Logger
}

// New builds a Mailer with every provider the configuration enables.
func New(cfg config.MailConfig, log *zap.Logger) *Mailer {
	m := &Mailer{log: log}
	if cfg.ResendAPIKey != "" {
		m.resend = NewResend(cfg.ResendBaseURL, cfg.ResendAPIKey, formatFrom(cfg.FromName, cfg.ResendFrom))
	}
	if cfg.SendGridAPIKey != "" {
		m.sendgrid = NewSendGrid("", cfg.SendGridAPIKey, cfg.FromName, cfg.SendGridFrom)
	}
	if smtpCfg, ok := smtpConfigFrom(cfg); ok {
		m.smtp = NewSMTP(smtpCfg)
	}
	return m
}

// NewWithProviders wires explicit providers; nil entries are disabled.
func NewWithProviders(resend, sendgrid, smtp Provider, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{resend: resend, sendgrid: sendgrid, smtp: smtp, log: log}
}

func (m *Mailer) Configured() bool {
	return m.resend != nil || m.sendgrid != nil || m.smtp != nil
}

// Send delivers msg. requested may name a provider; Resend is preferred
// unless SMTP is asked for and available.
func (m *Mailer) Send(ctx context.Context, msg Message, requested string) (*Result, error) {
	msg.To = cleanRecipients(msg.To)
	if len(msg.To) == 0 || strings.TrimSpace(msg.Subject) == "" || strings.TrimSpace(msg.HTML) == "" {
		return nil, ErrInvalidMessage
	}

	provider, err := m.pick(strings.ToLower(strings.TrimSpace(requested)))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	id, err := provider.Send(ctx, msg)
	if err != nil {
		m.log.Error("email send failed", zap.String("provider", provider.Name()), zap.Strings("to", msg.To), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", provider.Name(), err)
	}

	m.log.Info("email sent",
		zap.String("provider", provider.Name()),
		zap.String("message_id", id),
		zap.String("template", msg.TemplateName),
	)
	return &Result{MessageID: id, Provider: provider.Name(), TemplateName: msg.TemplateName}, nil
}

func (m *Mailer) pick(requested string) (Provider, error) {
	switch {
	case requested == ProviderSMTP && m.smtp != nil:
		return m.smtp, nil
	case requested == ProviderSendGrid && m.sendgrid != nil:
		return m.sendgrid, nil
	case m.resend != nil:
		return m.resend, nil
	case m.sendgrid != nil:
		return m.sendgrid, nil
	case m.smtp != nil:
		return m.smtp, nil
	}
	return nil, ErrNotConfigured
}

func cleanRecipients(to []string) []string {
	out := make([]string, 0, len(to))
	for _, addr := range to {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func formatFrom(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}
