package repository

import (
	"context"
	"testing"
	"time"

	"sellinginfinity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarRepository(t *testing.T) {
	repo := NewCalendarRepository(setupTestDB(t))
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	inside := &models.CalendarEvent{Title: "Busy", StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour), EventType: models.CalendarEventBlocked}
	outside := &models.CalendarEvent{Title: "Later", StartTime: day.AddDate(0, 0, 8), EndTime: day.AddDate(0, 0, 8).Add(time.Hour), EventType: models.CalendarEventBlocked}
	require.NoError(t, repo.Create(ctx, inside))
	require.NoError(t, repo.Create(ctx, outside))
	assert.NotEmpty(t, inside.ID)

	events, err := repo.Between(ctx, day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, inside.ID, events[0].ID)

	inside.Title = "Away"
	require.NoError(t, repo.Save(ctx, inside))
	got, err := repo.Get(ctx, inside.ID)
	require.NoError(t, err)
	assert.Equal(t, "Away", got.Title)

	require.NoError(t, repo.Delete(ctx, inside.ID))
	_, err = repo.Get(ctx, inside.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, inside.ID), ErrNotFound)
}
