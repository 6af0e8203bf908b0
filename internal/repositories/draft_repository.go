package repositories

import (
	"context"
	"sync"

	"retail_voice_backend/internal/models"
)

// DraftRepository holds at most one pending sale per session.
type DraftRepository interface {
	Put(ctx context.Context, draft models.SaleDraft) error
	Get(ctx context.Context, sessionID string) (*models.SaleDraft, error)
	// Take removes and returns the session's draft if its ID matches.
	// Only one caller can take a given draft.
	Take(ctx context.Context, sessionID, draftID string) (*models.SaleDraft, error)
	Delete(ctx context.Context, sessionID string) error
}

type memoryDraftRepository struct {
	mu     sync.Mutex
	drafts map[string]models.SaleDraft // key: session ID
}

func NewMemoryDraftRepository() DraftRepository {
	return &memoryDraftRepository{drafts: make(map[string]models.SaleDraft)}
}

func (r *memoryDraftRepository) Put(ctx context.Context, draft models.SaleDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[draft.SessionID] = draft
	return nil
}

func (r *memoryDraftRepository) Get(ctx context.Context, sessionID string) (*models.SaleDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft, ok := r.drafts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &draft, nil
}

func (r *memoryDraftRepository) Take(ctx context.Context, sessionID, draftID string) (*models.SaleDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft, ok := r.drafts[sessionID]
	if !ok || (draftID != "" && draft.ID != draftID) {
		return nil, ErrNotFound
	}
	delete(r.drafts, sessionID)
	return &draft, nil
}

func (r *memoryDraftRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, sessionID)
	return nil
}
