package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"sellinginfinity/config"
	"sellinginfinity/database"
	"sellinginfinity/models"
	"sellinginfinity/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, e Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return n.err
}

func (n *recordingNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

func setupService(t *testing.T, notifier Notifier) (*Service, repository.ReviewStore) {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	store := repository.NewReviewRepository(db)
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewService(store, notifier, zap.NewNop(), WithClock(clock.Now))
	t.Cleanup(svc.Wait)
	return svc, store
}

func submitReq(name, text string) SubmitRequest {
	return SubmitRequest{Name: name, Email: "user@example.com", Rating: 4, Review: text}
}

func TestSubmit_CreatesPendingAndNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := setupService(t, notifier)

	r, err := svc.Submit(context.Background(), SubmitRequest{Name: " Ana ", Email: "ana@example.com", Rating: 5, Review: "Great course"})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Ana", r.Name)
	assert.Equal(t, models.ReviewStatusPending, r.Status)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
	assert.Nil(t, r.ApprovedAt)

	svc.Wait()
	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, r.ID, events[0].ReviewID)
	assert.Equal(t, "Great course", events[0].Review)

	page, err := svc.ListApproved(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Reviews)
	assert.EqualValues(t, 0, page.Total)
}

func TestSubmit_Duplicate(t *testing.T) {
	svc, store := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, submitReq("Ana", "Great"))
	require.NoError(t, err)

	_, err = svc.Submit(ctx, submitReq("Ana", "Great"))
	assert.ErrorIs(t, err, ErrDuplicateSubmission)

	_, err = svc.Submit(ctx, submitReq("Ana", "Great, again"))
	require.NoError(t, err)

	total, err := store.Count(ctx, repository.ReviewFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestSubmit_InvalidCreatesNothing(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, store := setupService(t, notifier)
	ctx := context.Background()

	req := submitReq("Ana", "Great")
	req.Rating = 6
	_, err := svc.Submit(ctx, req)
	assert.ErrorIs(t, err, ErrRatingOutOfRange)

	total, err := store.Count(ctx, repository.ReviewFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	svc.Wait()
	assert.Empty(t, notifier.Events())
}

func TestSubmit_NotifierFailureIsSwallowed(t *testing.T) {
	svc, _ := setupService(t, &recordingNotifier{err: errors.New("webhook down")})

	r, err := svc.Submit(context.Background(), submitReq("Ana", "Great"))
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
}

func TestApprove_MakesReviewPublic(t *testing.T) {
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	r, err := svc.Submit(ctx, SubmitRequest{Name: "Ana", Email: "ana@example.com", Rating: 5, Review: "Great"})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, approved.Status)
	assert.True(t, approved.UpdatedAt.After(r.UpdatedAt))
	assert.True(t, approved.CreatedAt.Equal(r.CreatedAt))
	require.NotNil(t, approved.ApprovedAt)

	page, err := svc.ListApproved(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 1)
	assert.Equal(t, PublicReview{Name: "Ana", Rating: 5, Review: "Great", CreatedAt: page.Reviews[0].CreatedAt}, page.Reviews[0])
	assert.True(t, page.Reviews[0].CreatedAt.Equal(r.CreatedAt))

	again, err := svc.Approve(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, again.Status)
	assert.True(t, again.ApprovedAt.Equal(*approved.ApprovedAt))
	assert.True(t, again.UpdatedAt.After(approved.UpdatedAt))
}

func TestReject_HidesReview(t *testing.T) {
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	r, err := svc.Submit(ctx, submitReq("Ana", "Great"))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, r.ID)
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, r.ID, "off topic")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	require.NotNil(t, rejected.AdminNotes)
	assert.Equal(t, "off topic", *rejected.AdminNotes)

	again, err := svc.Reject(ctx, r.ID, "")
	require.NoError(t, err)
	assert.True(t, again.RejectedAt.Equal(*rejected.RejectedAt))
	require.NotNil(t, again.AdminNotes)
	assert.Equal(t, "off topic", *again.AdminNotes)

	page, err := svc.ListApproved(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Reviews)

	approved, err := svc.Approve(ctx, r.ID)
	require.NoError(t, err)
	assert.Nil(t, approved.RejectedAt)
	assert.Nil(t, approved.AdminNotes)
}

func TestDelete_ThenNotFound(t *testing.T) {
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	r, err := svc.Submit(ctx, submitReq("Ana", "Great"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.ErrorIs(t, svc.Delete(ctx, r.ID), ErrNotFound)

	_, err = svc.Approve(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Act(ctx, "", ActionReject, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListApproved_Pagination(t *testing.T) {
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		r, err := svc.Submit(ctx, submitReq(fmt.Sprintf("User %02d", i), "Helpful"))
		require.NoError(t, err)
		_, err = svc.Approve(ctx, r.ID)
		require.NoError(t, err)
	}
	_, err := svc.Submit(ctx, submitReq("Pending", "Not yet"))
	require.NoError(t, err)

	first, err := svc.ListApproved(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, first.Reviews, 10)
	assert.EqualValues(t, 15, first.Total)
	assert.Equal(t, "User 14", first.Reviews[0].Name)

	second, err := svc.ListApproved(ctx, 10, 10)
	require.NoError(t, err)
	assert.Len(t, second.Reviews, 5)
	assert.EqualValues(t, 15, second.Total)
	assert.Equal(t, "User 00", second.Reviews[4].Name)

	clamped, err := svc.ListApproved(ctx, 1000, -3)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, clamped.Limit)
	assert.Equal(t, 0, clamped.Offset)
}

func TestListForModerationAndStats(t *testing.T) {
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	a, err := svc.Submit(ctx, submitReq("A", "one"))
	require.NoError(t, err)
	b, err := svc.Submit(ctx, submitReq("B", "two"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, submitReq("C", "three"))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, a.ID)
	require.NoError(t, err)
	_, err = svc.Reject(ctx, b.ID, "")
	require.NoError(t, err)

	pending, err := svc.ListForModeration(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "C", pending[0].Name)

	all, err := svc.ListForModeration(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "C", all[0].Name)

	_, err = svc.ListForModeration(ctx, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Pending: 1, Approved: 1, Rejected: 1, Total: 3}, *stats)
}

type brokenStore struct {
	repository.ReviewStore
}

func (brokenStore) Find(context.Context, repository.ReviewFilter) (*models.Review, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Query(context.Context, repository.ReviewFilter, repository.Order, int, int) ([]models.Review, error) {
	return nil, errors.New("connection refused")
}

func TestStoreFailureSurfacesAsUnavailable(t *testing.T) {
	svc := NewService(brokenStore{}, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Submit(ctx, submitReq("Ana", "Great"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.Approve(ctx, "some-id")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.ListApproved(ctx, 10, 0)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" Approve ")
	require.NoError(t, err)
	assert.Equal(t, ActionApprove, a)

	_, err = ParseAction("archive")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestSubmit_NotificationTimeout(t *testing.T) {
	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)

	var mu sync.Mutex
	var got error
	slow := NotifierFunc(func(ctx context.Context, _ Event) error {
		<-ctx.Done()
		mu.Lock()
		got = ctx.Err()
		mu.Unlock()
		return ctx.Err()
	})

	svc := NewService(repository.NewReviewRepository(db), slow, zap.NewNop(), WithNotifyTimeout(20*time.Millisecond))
	start := time.Now()
	_, err = svc.Submit(context.Background(), submitReq("Tim", "Quick timeout"))
	require.NoError(t, err)
	svc.Wait()

	assert.Less(t, time.Since(start), 5*time.Second)
	mu.Lock()
	defer mu.Unlock()
	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestWithNotifyTimeoutKeepsDefault(t *testing.T) {
	svc := NewService(nil, nil, nil, WithNotifyTimeout(0))
	assert.Equal(t, defaultNotifyTimeout, svc.notifyTimeout)
}
