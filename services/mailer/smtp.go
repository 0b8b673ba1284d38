package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"sellinginfinity/config"

	"github.com/google/uuid"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

// smtpConfigFrom prefers an explicit SMTP host and falls back to Gmail
// with EMAIL_USER / EMAIL_PASS.
func smtpConfigFrom(cfg config.MailConfig) (SMTPConfig, bool) {
	if cfg.SMTPHost != "" {
		return SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     firstNonEmpty(cfg.SMTPUser, cfg.EmailUser),
			FromName: cfg.FromName,
		}, true
	}
	if cfg.EmailUser != "" && cfg.EmailPass != "" {
		return SMTPConfig{
			Host:     "smtp.gmail.com",
			Port:     587,
			User:     cfg.EmailUser,
			Password: cfg.EmailPass,
			From:     cfg.EmailUser,
			FromName: cfg.FromName,
		}, true
	}
	return SMTPConfig{}, false
}

type SMTP struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *SMTP) Name() string { return ProviderSMTP }

func (s *SMTP) Send(ctx context.Context, msg Message) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host)
	body := buildMIME(formatFrom(s.cfg.FromName, s.cfg.From), messageID, msg)

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	// net/smtp has no context support, so the deadline is enforced here.
	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, s.cfg.From, msg.To, body)
	}()
	select {
	case err := <-done:
		if err != nil {
			return "", err
		}
		return messageID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func buildMIME(from, messageID string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(from))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(strings.Join(msg.To, ", ")))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)))
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// headerValue folds CR and LF to spaces so a value cannot start a new header.
func headerValue(v string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
