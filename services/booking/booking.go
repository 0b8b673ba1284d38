package booking

import (
	"context"

	"sellinginfinity/models"
)

type Store interface {
	LatestConfirmed(ctx context.Context, userID string) (*models.Booking, error)
	Latest(ctx context.Context, userID string) (*models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// LatestForUser prefers the confirmed booking with the latest date and
// otherwise falls back to the most recently created booking. It returns
// nil when the user has none.
func (s *Service) LatestForUser(ctx context.Context, userID string) (*models.Booking, error) {
	b, err := s.store.LatestConfirmed(ctx, userID)
	if err != nil || b != nil {
		return b, err
	}
	return s.store.Latest(ctx, userID)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.store.ListForUser(ctx, userID)
}
