package review

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"sellinginfinity/models"
	"sellinginfinity/repository"

	"go.uber.org/zap"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	defaultNotifyTimeout = 15 * time.Second
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionApprove, ActionReject, ActionDelete:
		return a, nil
	}
	return "", ErrInvalidAction
}

// PublicReview is the projection of an approved review shown on the site.
type PublicReview struct {
	Name              string    `json:"name"`
	Rating            int       `json:"rating"`
	Review            string    `json:"review"`
	YearsOfExperience *int      `json:"yearsOfExperience"`
	CreatedAt         time.Time `json:"createdAt"`
}

type PublicPage struct {
	Reviews []PublicReview `json:"reviews"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

type Stats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

type Option func(*Service)

// WithClock replaces time.Now as the source of review timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifyTimeout bounds each background notification. Non-positive
// values keep the default.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

type Service struct {
	store         repository.ReviewStore
	notifier      Notifier
	log           *zap.Logger
	now           func() time.Time
	notifyTimeout time.Duration
	inflight      sync.WaitGroup
}

func NewService(store repository.ReviewStore, notifier Notifier, log *zap.Logger, opts ...Option) *Service {
	if notifier == nil {
		notifier = NotifierFunc(func(context.Context, Event) error { return nil })
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		store:         store,
		notifier:      notifier,
		log:           log,
		now:           time.Now,
		notifyTimeout: defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates, deduplicates and stores a new pending review, then
// notifies operators in the background.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Review, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	req = normalize(req)

	existing, err := s.store.Find(ctx, repository.ReviewFilter{Name: req.Name, ReviewText: req.Review})
	if err != nil {
		return nil, storeError("check duplicate", err)
	}
	if existing != nil {
		return nil, ErrDuplicateSubmission
	}

	now := s.now().UTC()
	review := &models.Review{
		Name:              req.Name,
		Email:             req.Email,
		Rating:            req.Rating,
		ReviewText:        req.Review,
		YearsOfExperience: req.YearsOfExperience,
		Status:            models.ReviewStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	id, err := s.store.Insert(ctx, review)
	if err != nil {
		return nil, storeError("insert", err)
	}
	review.ID = id

	s.log.Info("review submitted", zap.String("review_id", id), zap.Int("rating", review.Rating))
	s.dispatch(Event{
		ReviewID:  id,
		Name:      review.Name,
		Email:     review.Email,
		Rating:    review.Rating,
		Review:    review.ReviewText,
		CreatedAt: now,
	})
	return review, nil
}

func (s *Service) dispatch(event Event) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, event); err != nil {
			s.log.Warn("review notification failed", zap.String("review_id", event.ReviewID), zap.Error(err))
		}
	}()
}

// Wait blocks until background notifications have finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// Act applies a moderation action. The review must exist; delete
// returns a nil review.
func (s *Service) Act(ctx context.Context, id string, action Action, notes string) (*models.Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	current, err := s.store.Find(ctx, repository.ReviewFilter{ID: id})
	if err != nil {
		return nil, storeError("load review", err)
	}
	if current == nil {
		return nil, ErrNotFound
	}

	now := s.now().UTC()
	var patch repository.ReviewPatch

	switch action {
	case ActionApprove:
		patch = repository.ReviewPatch{Status: models.ReviewStatusApproved, UpdatedAt: now, ClearRejection: true}
		if current.Status != models.ReviewStatusApproved {
			patch.ApprovedAt = &now
		}
	case ActionReject:
		patch = repository.ReviewPatch{Status: models.ReviewStatusRejected, UpdatedAt: now}
		if current.Status != models.ReviewStatusRejected {
			patch.RejectedAt = &now
		}
		if notes = strings.TrimSpace(notes); notes != "" {
			patch.AdminNotes = &notes
		}
	case ActionDelete:
		if err := s.store.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, storeError("delete", err)
		}
		s.log.Info("review deleted", zap.String("review_id", id))
		return nil, nil
	default:
		return nil, ErrInvalidAction
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError("update", err)
	}
	s.log.Info("review moderated", zap.String("review_id", id), zap.String("action", string(action)))
	return updated, nil
}

func (s *Service) Approve(ctx context.Context, id string) (*models.Review, error) {
	return s.Act(ctx, id, ActionApprove, "")
}

func (s *Service) Reject(ctx context.Context, id, notes string) (*models.Review, error) {
	return s.Act(ctx, id, ActionReject, notes)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.Act(ctx, id, ActionDelete, "")
	return err
}

// ListApproved returns one page of approved reviews, newest first.
func (s *Service) ListApproved(ctx context.Context, limit, offset int) (*PublicPage, error) {
	limit, offset = clampPage(limit, offset)
	filter := repository.ReviewFilter{Status: models.ReviewStatusApproved}

	rows, err := s.store.Query(ctx, filter, repository.NewestFirst, limit, offset)
	if err != nil {
		return nil, storeError("list approved", err)
	}
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, storeError("count approved", err)
	}

	page := &PublicPage{Reviews: make([]PublicReview, 0, len(rows)), Total: total, Limit: limit, Offset: offset}
	for _, r := range rows {
		page.Reviews = append(page.Reviews, PublicReview{
			Name:              r.Name,
			Rating:            r.Rating,
			Review:            r.ReviewText,
			YearsOfExperience: r.YearsOfExperience,
			CreatedAt:         r.CreatedAt,
		})
	}
	return page, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ParseStatus maps a moderation filter to a status; "" and "all" mean any.
func ParseStatus(s string) (models.ReviewStatus, error) {
	switch st := models.ReviewStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "", "all":
		return "", nil
	case models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// ListForModeration returns full records, newest first.
func (s *Service) ListForModeration(ctx context.Context, status string) ([]models.Review, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Query(ctx, repository.ReviewFilter{Status: st}, repository.NewestFirst, 0, 0)
	if err != nil {
		return nil, storeError("list for moderation", err)
	}
	return rows, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	for status, dst := range map[models.ReviewStatus]*int64{
		models.ReviewStatusPending:  &stats.Pending,
		models.ReviewStatusApproved: &stats.Approved,
		models.ReviewStatusRejected: &stats.Rejected,
	} {
		n, err := s.store.Count(ctx, repository.ReviewFilter{Status: status})
		if err != nil {
			return nil, storeError("count "+string(status), err)
		}
		*dst = n
		stats.Total += n
	}
	return stats, nil
}
