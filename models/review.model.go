package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewStatus is the moderation state of a testimonial.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is a customer testimonial submitted from the public site.
// Timestamps are written by the review service, not by gorm.
type Review struct {
	ID                string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name              string       `gorm:"type:varchar(255);not null" json:"name"`
	Email             string       `gorm:"type:varchar(255);not null" json:"email"`
	Rating            int          `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText        string       `gorm:"column:review;type:text;not null" json:"review"`
	YearsOfExperience *int         `json:"yearsOfExperience"`
	Status            ReviewStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt         time.Time    `gorm:"autoCreateTime:false;index" json:"createdAt"`
	UpdatedAt         time.Time    `gorm:"autoUpdateTime:false" json:"updatedAt"`
	ApprovedAt        *time.Time   `json:"approvedAt"`
	RejectedAt        *time.Time   `json:"rejectedAt"`
	AdminNotes        *string      `gorm:"type:text" json:"adminNotes"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		r.ID = id.String()
	}
	return nil
}
