package utils

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"sellinginfinity/models"
	"sellinginfinity/services/mailer"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type PendingLister interface {
	ListForModeration(ctx context.Context, status string) ([]models.Review, error)
}

type DigestSender interface {
	Send(ctx context.Context, msg mailer.Message, provider string) (*mailer.Result, error)
}

// ReviewDigest emails the operator a summary of reviews awaiting moderation.
type ReviewDigest struct {
	Reviews PendingLister
	Mail    DigestSender
	To      string
	SiteURL string
	Log     *zap.Logger
}

// StartReviewDigest schedules the digest on spec in loc and starts the cron.
func StartReviewDigest(spec string, loc *time.Location, d *ReviewDigest) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := d.Run(ctx); err != nil {
			d.Log.Error("review digest failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid REVIEW_DIGEST_CRON %q: %w", spec, err)
	}

	c.Start()
	d.Log.Info("review digest scheduled", zap.String("spec", spec))
	return c, nil
}

// Run sends one digest. Nothing is sent when no review is pending.
func (d *ReviewDigest) Run(ctx context.Context) error {
	pending, err := d.Reviews.ListForModeration(ctx, string(models.ReviewStatusPending))
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		d.Log.Debug("no pending reviews for digest")
		return nil
	}

	var rows strings.Builder
	for _, r := range pending {
		fmt.Fprintf(&rows, "<li><strong>%s</strong> (%d/5) on %s: %s</li>",
			html.EscapeString(r.Name), r.Rating, r.CreatedAt.Format("02 Jan 2006"), html.EscapeString(truncate(r.ReviewText, 120)))
	}
	body := fmt.Sprintf(`<p>%d testimonial(s) are waiting for moderation.</p><ul>%s</ul><a class="btn" href="%s/admin/reviews">Open moderation</a>`,
		len(pending), rows.String(), strings.TrimRight(d.SiteURL, "/"))

	_, err = d.Mail.Send(ctx, mailer.Message{
		To:           []string{d.To},
		Subject:      fmt.Sprintf("%d pending testimonial(s)", len(pending)),
		HTML:         mailer.Wrap("Pending testimonials", body),
		TemplateName: "review_digest",
	}, "")
	if err != nil {
		return err
	}
	d.Log.Info("review digest sent", zap.Int("pending", len(pending)))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
