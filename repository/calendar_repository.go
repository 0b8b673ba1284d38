package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sellinginfinity/models"

	"gorm.io/gorm"
)

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create calendar event: %w", err)
	}
	return nil
}

func (r *CalendarRepository) Get(ctx context.Context, id string) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get calendar event %s: %w", id, err)
	}
	return &event, nil
}

func (r *CalendarRepository) Save(ctx context.Context, event *models.CalendarEvent) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("save calendar event %s: %w", event.ID, err)
	}
	return nil
}

func (r *CalendarRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CalendarEvent{})
	if res.Error != nil {
		return fmt.Errorf("delete calendar event %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Between lists events overlapping [from, to), earliest first.
func (r *CalendarRepository) Between(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	err := r.db.WithContext(ctx).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}
