package repositories

import (
	"context"
	"sync"
	"time"

	"retail_voice_backend/internal/models"
)

// SessionRepository stores the live terminal sessions, one per user.
type SessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	GetByUserID(ctx context.Context, userID string) (*models.Session, error)
	Touch(ctx context.Context, userID string, at time.Time) error
	Delete(ctx context.Context, userID string) error
	ListIdleSince(ctx context.Context, cutoff time.Time) ([]models.Session, error)
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session // key: user ID
}

// NewMemorySessionRepository creates an in-process session store.
// Sessions do not survive a restart; clients log in again.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]models.Session)}
}

func (r *memorySessionRepository) Save(ctx context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.Products = append([]models.Product(nil), session.Products...)
	r.sessions[session.UserID] = session
	return nil
}

func (r *memorySessionRepository) GetByUserID(ctx context.Context, userID string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (r *memorySessionRepository) Touch(ctx context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok {
		return ErrNotFound
	}
	session.LastSeenAt = at
	r.sessions[userID] = session
	return nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, userID)
	return nil
}

func (r *memorySessionRepository) ListIdleSince(ctx context.Context, cutoff time.Time) ([]models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var idle []models.Session
	for _, s := range r.sessions {
		if s.LastSeenAt.Before(cutoff) {
			idle = append(idle, s)
		}
	}
	return idle, nil
}
