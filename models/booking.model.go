package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Product struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"not null;default:0" json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Booking is a consultation slot a user reserved for a product.
type Booking struct {
	ID              string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID          string         `gorm:"type:varchar(64);not null;index" json:"userId"`
	ProductID       string         `gorm:"type:varchar(36);not null;index" json:"productId"`
	BookingDate     datatypes.Date `gorm:"not null" json:"bookingDate"`
	BookingTime     string         `gorm:"type:varchar(5)" json:"bookingTime"` // HH:MM
	DurationMinutes int            `gorm:"not null;default:60" json:"durationMinutes"`
	Status          BookingStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
