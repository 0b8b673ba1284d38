package booking

import (
	"context"
	"testing"
	"time"

	"sellinginfinity/config"
	"sellinginfinity/database"
	"sellinginfinity/models"
	"sellinginfinity/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func TestLatestForUser(t *testing.T) {
	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	repo := repository.NewBookingRepository(db)
	svc := NewService(repo)
	ctx := context.Background()

	product := &models.Product{Name: "Sales Audit"}
	require.NoError(t, repo.CreateProduct(ctx, product))

	none, err := svc.LatestForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, none)

	day := datatypes.Date(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	pending := &models.Booking{UserID: "u1", ProductID: product.ID, BookingDate: day, Status: models.BookingStatusPending}
	require.NoError(t, repo.Create(ctx, pending))

	got, err := svc.LatestForUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pending.ID, got.ID)
	assert.Equal(t, "Sales Audit", got.Product.Name)

	confirmed := &models.Booking{UserID: "u1", ProductID: product.ID, BookingDate: day, Status: models.BookingStatusConfirmed}
	require.NoError(t, repo.Create(ctx, confirmed))

	got, err = svc.LatestForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, confirmed.ID, got.ID)

	list, err := svc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
