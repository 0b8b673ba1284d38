package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarEventType string

const (
	CalendarEventBlocked CalendarEventType = "blocked"
	CalendarEventBooking CalendarEventType = "booking"
)

// CalendarEvent marks a period on the admin calendar as busy.
type CalendarEvent struct {
	ID          string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string            `gorm:"type:varchar(255);not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	StartTime   time.Time         `gorm:"not null;index" json:"startTime"`
	EndTime     time.Time         `gorm:"not null" json:"endTime"`
	EventType   CalendarEventType `gorm:"type:varchar(20);not null;default:'blocked'" json:"eventType"`
	AwayStatus  bool              `gorm:"default:false" json:"awayStatus"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
