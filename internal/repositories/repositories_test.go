package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail_voice_backend/internal/models"
)

func TestMemorySessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	now := time.Now()

	require.NoError(t, repo.Save(ctx, models.Session{ID: "s1", UserID: "u1", LastSeenAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.Save(ctx, models.Session{ID: "s2", UserID: "u2", LastSeenAt: now}))

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	idle, err := repo.ListIdleSince(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, idle, 1)
	assert.Equal(t, "u1", idle[0].UserID)

	require.NoError(t, repo.Touch(ctx, "u1", now))
	idle, err = repo.ListIdleSince(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, idle)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByUserID(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), ErrNotFound)
}

func TestMemoryDraftRepository_TakeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDraftRepository()
	require.NoError(t, repo.Put(ctx, models.SaleDraft{ID: "d1", SessionID: "s1"}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Take(ctx, "s1", "d1"); err == nil {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, taken)
	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDraftRepository_TakeWrongID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDraftRepository()
	require.NoError(t, repo.Put(ctx, models.SaleDraft{ID: "d2", SessionID: "s1"}))

	_, err := repo.Take(ctx, "s1", "d1")
	assert.ErrorIs(t, err, ErrNotFound)

	draft, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "d2", draft.ID)
}

func TestMemorySubmissionRepository_RejectsReplayedDraft(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySubmissionRepository()

	sub := &models.Submission{DraftID: "d1", RetailerID: "r1", ProductName: "Sugar 1kg", UnitsSold: 2}
	id, err := repo.Reserve(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionPending, sub.Outcome)

	_, err = repo.Reserve(ctx, &models.Submission{DraftID: "d1", RetailerID: "r1"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	require.NoError(t, repo.Complete(ctx, id, models.SubmitInsufficientInventory, "short", &models.Shortfall{Available: 1, Requested: 2}))

	rows, err := repo.ListRecent(ctx, "r1", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.SubmitInsufficientInventory, rows[0].Outcome)
	require.NotNil(t, rows[0].Available)
	assert.Equal(t, 1, *rows[0].Available)

	assert.ErrorIs(t, repo.Complete(ctx, 99, models.SubmitRecorded, "", nil), ErrNotFound)
}
