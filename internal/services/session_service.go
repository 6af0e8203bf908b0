package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/repositories"
	"retail_voice_backend/internal/voice"
	"retail_voice_backend/pkg/utils"
)

// --- SessionService Interface ---
type SessionService interface {
	Login(ctx context.Context, userID, token string) (*models.Session, error)
	Get(ctx context.Context, userID string) (*models.Session, error)
	Touch(ctx context.Context, userID string) error
	Logout(ctx context.Context, userID string) error
	ExpireIdle(ctx context.Context, now time.Time) (int, error)
	Capturer(sessionID string) *voice.Capturer
}

// --- sessionService Implementation ---
type sessionService struct {
	api       RetailAPI
	sessions  repositories.SessionRepository
	drafts    repositories.DraftRepository
	idleTTL   time.Duration
	now       func() time.Time
	mu        sync.Mutex
	capturers map[string]*voice.Capturer // key: session ID
}

// NewSessionService creates a new instance of SessionService.
func NewSessionService(api RetailAPI, sessions repositories.SessionRepository, drafts repositories.DraftRepository, idleTTL time.Duration) SessionService {
	return &sessionService{
		api:       api,
		sessions:  sessions,
		drafts:    drafts,
		idleTTL:   idleTTL,
		now:       time.Now,
		capturers: make(map[string]*voice.Capturer),
	}
}

// Login resolves the user's retailer and loads the product catalog. Both
// lookups run concurrently and must both succeed. An existing session for the
// same user is replaced.
func (s *sessionService) Login(ctx context.Context, userID, token string) (*models.Session, error) {
	var retailers []models.Retailer
	var products []models.Product

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		retailers, err = s.api.ListRetailers(gctx, token)
		if err != nil {
			return fmt.Errorf("fetching retailers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = s.api.ListProducts(gctx, token)
		if err != nil {
			return fmt.Errorf("fetching products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(retailers) == 0 {
		return nil, ErrNoRetailers
	}
	var retailer *models.Retailer
	for i := range retailers {
		if retailers[i].UserID == userID {
			retailer = &retailers[i]
			break
		}
	}
	if retailer == nil {
		return nil, ErrRetailerNotFound
	}

	if existing, err := s.sessions.GetByUserID(ctx, userID); err == nil {
		s.teardown(ctx, existing)
	}

	now := s.now()
	session := models.Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		RetailerID: retailer.ID,
		Token:      token,
		Products:   products,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	utils.LogInfo("Session started", map[string]interface{}{
		"session_id":  session.ID,
		"user_id":     userID,
		"retailer_id": retailer.ID,
		"products":    len(products),
	})
	return &session, nil
}

func (s *sessionService) Get(ctx context.Context, userID string) (*models.Session, error) {
	session, err := s.sessions.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Touch(ctx context.Context, userID string) error {
	if err := s.sessions.Touch(ctx, userID, s.now()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// Logout clears the session together with its pending draft and voice capture.
func (s *sessionService) Logout(ctx context.Context, userID string) error {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	s.teardown(ctx, session)
	utils.LogInfo("Session ended", map[string]interface{}{"session_id": session.ID, "user_id": userID})
	return nil
}

// ExpireIdle logs out every session idle for longer than the configured TTL.
func (s *sessionService) ExpireIdle(ctx context.Context, now time.Time) (int, error) {
	idle, err := s.sessions.ListIdleSince(ctx, now.Add(-s.idleTTL))
	if err != nil {
		return 0, fmt.Errorf("listing idle sessions: %w", err)
	}
	for i := range idle {
		s.teardown(ctx, &idle[i])
	}
	return len(idle), nil
}

// Capturer returns the session's voice capturer, creating it on first use.
func (s *sessionService) Capturer(sessionID string) *voice.Capturer {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.capturers[sessionID]
	if !ok {
		c = voice.NewCapturer()
		s.capturers[sessionID] = c
	}
	return c
}

func (s *sessionService) teardown(ctx context.Context, session *models.Session) {
	s.mu.Lock()
	if c, ok := s.capturers[session.ID]; ok {
		c.Close()
		delete(s.capturers, session.ID)
	}
	s.mu.Unlock()

	if err := s.drafts.Delete(ctx, session.ID); err != nil {
		utils.LogError(err, "Failed to drop draft of ended session", map[string]interface{}{"session_id": session.ID})
	}
	if err := s.sessions.Delete(ctx, session.UserID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		utils.LogError(err, "Failed to delete session", map[string]interface{}{"session_id": session.ID})
	}
}
