package repository

import (
	"context"
	"errors"
	"fmt"

	"sellinginfinity/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &product, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Omit("Product").Create(booking).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// LatestConfirmed returns the user's confirmed booking with the latest
// booking date, or nil.
func (r *BookingRepository) LatestConfirmed(ctx context.Context, userID string) (*models.Booking, error) {
	return r.first(r.db.WithContext(ctx).
		InnerJoins("Product").
		Where("bookings.user_id = ? AND bookings.status = ?", userID, models.BookingStatusConfirmed).
		Order("bookings.booking_date DESC"))
}

// Latest returns the user's most recently created booking of any status, or nil.
func (r *BookingRepository) Latest(ctx context.Context, userID string) (*models.Booking, error) {
	return r.first(r.db.WithContext(ctx).
		InnerJoins("Product").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC"))
}

func (r *BookingRepository) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := r.db.WithContext(ctx).
		InnerJoins("Product").
		Where("bookings.user_id = ?", userID).
		Order("bookings.booking_date DESC").
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", userID, err)
	}
	return bookings, nil
}

func (r *BookingRepository) first(q *gorm.DB) (*models.Booking, error) {
	var booking models.Booking
	if err := q.Take(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &booking, nil
}
