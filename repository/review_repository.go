package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sellinginfinity/models"

	"gorm.io/gorm"
)

// ReviewFilter narrows review lookups. Zero fields are ignored.
type ReviewFilter struct {
	ID         string
	Name       string
	ReviewText string
	Status     models.ReviewStatus
}

type Order int

const (
	NewestFirst Order = iota
	OldestFirst
)

// ReviewPatch describes a moderation update. Status and UpdatedAt are
// always written; the pointer fields only when set.
type ReviewPatch struct {
	Status     models.ReviewStatus
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	RejectedAt *time.Time
	AdminNotes *string
	// ClearRejection nulls rejected_at and admin_notes.
	ClearRejection bool
}

// ReviewStore is the persistence contract of the review service.
type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) (string, error)
	Update(ctx context.Context, id string, patch ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, filter ReviewFilter) (*models.Review, error)
	Query(ctx context.Context, filter ReviewFilter, order Order, limit, offset int) ([]models.Review, error)
	Count(ctx context.Context, filter ReviewFilter) (int64, error)
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) (string, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return "", fmt.Errorf("insert review: %w", err)
	}
	return review.ID, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id string, patch ReviewPatch) (*models.Review, error) {
	updates := map[string]interface{}{
		"status":     patch.Status,
		"updated_at": patch.UpdatedAt,
	}
	if patch.ApprovedAt != nil {
		updates["approved_at"] = *patch.ApprovedAt
	}
	if patch.ClearRejection {
		updates["rejected_at"] = nil
		updates["admin_notes"] = nil
	}
	if patch.RejectedAt != nil {
		updates["rejected_at"] = *patch.RejectedAt
	}
	if patch.AdminNotes != nil {
		updates["admin_notes"] = *patch.AdminNotes
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Review{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update review %s: %w", id, err)
	}

	var review models.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reload review %s: %w", id, err)
	}
	return &review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})
	if res.Error != nil {
		return fmt.Errorf("delete review %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns the first matching review, or nil when there is none.
func (r *ReviewRepository) Find(ctx context.Context, filter ReviewFilter) (*models.Review, error) {
	var review models.Review
	err := r.scoped(ctx, filter).Order("created_at DESC").Take(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepository) Query(ctx context.Context, filter ReviewFilter, order Order, limit, offset int) ([]models.Review, error) {
	q := r.scoped(ctx, filter)
	if order == OldestFirst {
		q = q.Order("created_at ASC").Order("id ASC")
	} else {
		q = q.Order("created_at DESC").Order("id DESC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	reviews := []models.Review{}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Count(ctx context.Context, filter ReviewFilter) (int64, error) {
	var total int64
	if err := r.scoped(ctx, filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return total, nil
}

func (r *ReviewRepository) scoped(ctx context.Context, filter ReviewFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Review{})
	if filter.ID != "" {
		q = q.Where("id = ?", filter.ID)
	}
	if filter.Name != "" {
		q = q.Where("name = ?", filter.Name)
	}
	if filter.ReviewText != "" {
		q = q.Where("review = ?", filter.ReviewText)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}
