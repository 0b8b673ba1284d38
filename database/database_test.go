package database

import (
	"testing"

	"sellinginfinity/config"
	"sellinginfinity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnectSQLiteMigrates(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)

	for _, model := range []interface{}{&models.Review{}, &models.CalendarEvent{}, &models.Product{}, &models.Booking{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestRatingCheckConstraint(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)

	err = db.Create(&models.Review{Name: "A", Email: "a@b.co", Rating: 9, ReviewText: "x", Status: models.ReviewStatusPending}).Error
	assert.Error(t, err)
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
