package utils

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"sellinginfinity/models"
	"sellinginfinity/services/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsPDF(t *testing.T) {
	header := func(name, ct string) *multipart.FileHeader {
		h := textproto.MIMEHeader{}
		if ct != "" {
			h.Set("Content-Type", ct)
		}
		return &multipart.FileHeader{Filename: name, Header: h}
	}

	assert.True(t, IsPDF(header("brochure.PDF", "")))
	assert.True(t, IsPDF(header("upload", "application/pdf")))
	assert.False(t, IsPDF(header("photo.png", "image/png")))
	assert.False(t, IsPDF(nil))
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("DEBUG")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger("loud")
	assert.Error(t, err)
}

type listerFunc func(ctx context.Context, status string) ([]models.Review, error)

func (f listerFunc) ListForModeration(ctx context.Context, status string) ([]models.Review, error) {
	return f(ctx, status)
}

type captureSender struct{ msgs []mailer.Message }

func (c *captureSender) Send(_ context.Context, msg mailer.Message, _ string) (*mailer.Result, error) {
	c.msgs = append(c.msgs, msg)
	return &mailer.Result{}, nil
}

func TestReviewDigestRun(t *testing.T) {
	var reviews []models.Review
	var asked string
	sender := &captureSender{}
	d := &ReviewDigest{
		Reviews: listerFunc(func(_ context.Context, status string) ([]models.Review, error) {
			asked = status
			return reviews, nil
		}),
		Mail:    sender,
		To:      "ops@example.com",
		SiteURL: "https://site.example",
		Log:     zap.NewNop(),
	}

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, "pending", asked)
	assert.Empty(t, sender.msgs)

	reviews = []models.Review{
		{Name: "Ana", Rating: 5, ReviewText: strings.Repeat("x", 200), CreatedAt: time.Now()},
		{Name: "<Bo>", Rating: 3, ReviewText: "ok", CreatedAt: time.Now()},
	}
	require.NoError(t, d.Run(context.Background()))
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "2 pending testimonial(s)", sender.msgs[0].Subject)
	assert.Contains(t, sender.msgs[0].HTML, "&lt;Bo&gt;")
	assert.Equal(t, []string{"ops@example.com"}, sender.msgs[0].To)
}

func TestStartReviewDigestRejectsBadSpec(t *testing.T) {
	_, err := StartReviewDigest("every day", time.UTC, &ReviewDigest{Log: zap.NewNop()})
	assert.Error(t, err)

	c, err := StartReviewDigest("0 9 * * *", time.UTC, &ReviewDigest{Log: zap.NewNop()})
	require.NoError(t, err)
	c.Stop()
}
