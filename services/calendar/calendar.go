package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sellinginfinity/models"
	"sellinginfinity/repository"

	"github.com/jinzhu/now"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("calendar slot not found")
	ErrInvalidSlot  = errors.New("date must be YYYY-MM-DD and times HH:MM")
	ErrInvalidRange = errors.New("end time must be after start time")
)

// SlotInput is an admin request to mark a period busy.
type SlotInput struct {
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Reason     string `json:"reason"`
	AwayStatus bool   `json:"awayStatus"`
}

type Store interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	Get(ctx context.Context, id string) (*models.CalendarEvent, error)
	Save(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, id string) error
	Between(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error)
}

type Service struct {
	store Store
	loc   *time.Location
	week  *now.Config
	clock func() time.Time
	log   *zap.Logger
}

func NewService(store Store, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store: store,
		loc:   loc,
		week:  &now.Config{WeekStartDay: time.Monday, TimeLocation: loc},
		clock: time.Now,
		log:   log,
	}
}

func (s *Service) Block(ctx context.Context, in SlotInput) (*models.CalendarEvent, error) {
	event := &models.CalendarEvent{EventType: models.CalendarEventBlocked}
	if err := s.apply(event, in); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, event); err != nil {
		return nil, err
	}
	s.log.Info("calendar slot blocked", zap.String("id", event.ID), zap.Time("start", event.StartTime))
	return event, nil
}

func (s *Service) Update(ctx context.Context, id string, in SlotInput) (*models.CalendarEvent, error) {
	event, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.apply(event, in); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListWeek returns the slots of the Monday-based week containing day
// (YYYY-MM-DD, today when empty).
func (s *Service) ListWeek(ctx context.Context, day string) ([]models.CalendarEvent, error) {
	ref := s.clock().In(s.loc)
	if day != "" {
		t, err := time.ParseInLocation(time.DateOnly, day, s.loc)
		if err != nil {
			return nil, ErrInvalidSlot
		}
		ref = t
	}
	w := s.week.With(ref)
	return s.store.Between(ctx, w.BeginningOfWeek().UTC(), w.EndOfWeek().UTC())
}

func (s *Service) apply(event *models.CalendarEvent, in SlotInput) error {
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.StartTime, s.loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.EndTime, s.loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if !end.After(start) {
		return ErrInvalidRange
	}

	reason := strings.TrimSpace(in.Reason)
	switch {
	case in.AwayStatus:
		event.Title = "Away - Not Available"
		event.Description = "Admin is away/unavailable"
	case reason != "":
		event.Title = reason
		event.Description = reason
	default:
		event.Title = "Busy - Admin Block"
		event.Description = "Time blocked by admin"
	}
	event.StartTime = start.UTC()
	event.EndTime = end.UTC()
	event.AwayStatus = in.AwayStatus
	return nil
}
