package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"retail_voice_backend/internal/matcher"
	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/repositories"
	"retail_voice_backend/internal/retailapi"
	"retail_voice_backend/internal/voice"
	"retail_voice_backend/pkg/utils"
)

// MsgServerError is shown when the sale could not reach the retail API.
const MsgServerError = "Server error while logging sale."

// --- SalesService Interface ---
type SalesService interface {
	StartFromUtterance(ctx context.Context, session *models.Session, capturer *voice.Capturer, rec voice.Recognizer) (*models.SaleDraft, error)
	CurrentDraft(ctx context.Context, session *models.Session) (*models.SaleDraft, error)
	Confirm(ctx context.Context, session *models.Session, draftID string) (*models.SubmitResult, error)
	Cancel(ctx context.Context, session *models.Session) error
	RecentSubmissions(ctx context.Context, session *models.Session) ([]models.Submission, error)
}

// --- salesService Implementation ---
type salesService struct {
	api         RetailAPI
	drafts      repositories.DraftRepository
	journal     repositories.SubmissionRepository
	threshold   float64
	recentLimit int
	now         func() time.Time
}

// NewSalesService creates a new instance of SalesService.
func NewSalesService(api RetailAPI, drafts repositories.DraftRepository, journal repositories.SubmissionRepository, threshold float64, recentLimit int) SalesService {
	return &salesService{
		api:         api,
		drafts:      drafts,
		journal:     journal,
		threshold:   threshold,
		recentLimit: recentLimit,
		now:         time.Now,
	}
}

// StartFromUtterance captures one utterance, extracts quantity and product
// phrase, matches the phrase against the session catalog and checks current
// stock. The resulting draft replaces any pending one.
func (s *salesService) StartFromUtterance(ctx context.Context, session *models.Session, capturer *voice.Capturer, rec voice.Recognizer) (*models.SaleDraft, error) {
	transcript, err := capturer.Capture(ctx, rec)
	if err != nil {
		return nil, err
	}

	parsed, err := voice.ParseTranscript(transcript)
	if err != nil {
		return nil, err
	}

	product, err := matcher.New(session.Products, matcher.WithThreshold(s.threshold)).Best(parsed.Phrase)
	if err != nil {
		utils.LogDebug("No product matched utterance", map[string]interface{}{
			"session_id": session.ID,
			"phrase":     parsed.Phrase,
		})
		return nil, err
	}

	items, err := s.api.Inventory(ctx, session.Token)
	if err != nil {
		return nil, fmt.Errorf("fetching inventory: %w", err)
	}
	check := EvaluateStock(findInventoryItem(items, product.Name), parsed.Quantity)

	draft := models.SaleDraft{
		ID:         uuid.NewString(),
		SessionID:  session.ID,
		Transcript: parsed.Transcript,
		Phrase:     parsed.Phrase,
		Product:    product,
		Quantity:   parsed.Quantity,
		Stock:      check,
		CanConfirm: check.Sufficient,
		CreatedAt:  s.now(),
	}
	if err := s.drafts.Put(ctx, draft); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}

	utils.LogInfo("Sale draft created", map[string]interface{}{
		"session_id": session.ID,
		"draft_id":   draft.ID,
		"product":    product.Name,
		"quantity":   draft.Quantity,
		"available":  check.Available,
		"can_submit": draft.CanConfirm,
	})
	return &draft, nil
}

func (s *salesService) CurrentDraft(ctx context.Context, session *models.Session) (*models.SaleDraft, error) {
	draft, err := s.drafts.Get(ctx, session.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoDraft
		}
		return nil, err
	}
	return draft, nil
}

// Confirm submits the pending draft. The draft is consumed before the upstream
// call, so it is gone whatever the outcome.
func (s *salesService) Confirm(ctx context.Context, session *models.Session, draftID string) (*models.SubmitResult, error) {
	pending, err := s.CurrentDraft(ctx, session)
	if err != nil {
		return nil, err
	}
	if draftID != "" && pending.ID != draftID {
		return nil, ErrNoDraft
	}
	if session.RetailerID == "" || pending.Product.Name == "" || pending.Quantity <= 0 {
		return nil, ErrMissingSaleData
	}
	if !pending.CanConfirm {
		return nil, ErrStockGateClosed
	}

	draft, err := s.drafts.Take(ctx, session.ID, pending.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoDraft
		}
		return nil, err
	}

	entry := &models.Submission{
		DraftID:          draft.ID,
		RetailerID:       session.RetailerID,
		UserID:           session.UserID,
		ProductName:      draft.Product.Name,
		UnitsSold:        draft.Quantity,
		TokenFingerprint: fingerprint(session.Token),
	}
	entryID, err := s.journal.Reserve(ctx, entry)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateSubmission
		}
		utils.LogError(err, "Failed to journal sale submission, continuing", map[string]interface{}{"draft_id": draft.ID})
		entryID = 0
	}

	outcome, err := s.api.AddSale(ctx, session.Token, session.RetailerID, draft.Product.Name, draft.Quantity)
	var result *models.SubmitResult
	switch {
	case errors.Is(err, retailapi.ErrUnauthorized):
		s.complete(ctx, entryID, models.SubmitFailure, err.Error(), nil)
		return nil, err
	case err != nil:
		utils.LogError(err, "Sale submission failed", map[string]interface{}{"draft_id": draft.ID})
		result = &models.SubmitResult{Kind: models.SubmitFailure, Message: MsgServerError}
	default:
		result = buildSubmitResult(outcome, draft)
	}

	s.complete(ctx, entryID, result.Kind, result.Message, result.Shortfall)
	utils.LogInfo("Sale submitted", map[string]interface{}{
		"draft_id": draft.ID,
		"product":  draft.Product.Name,
		"quantity": draft.Quantity,
		"outcome":  result.Kind,
	})
	return result, nil
}

func buildSubmitResult(outcome retailapi.AddSaleResult, draft *models.SaleDraft) *models.SubmitResult {
	switch {
	case outcome.Success:
		return &models.SubmitResult{
			Kind:    models.SubmitRecorded,
			Sale:    outcome.Sale,
			Message: fmt.Sprintf("Recorded: Sold %d x %s", draft.Quantity, draft.Product.Name),
		}
	case outcome.Shortfall != nil:
		return &models.SubmitResult{
			Kind:      models.SubmitInsufficientInventory,
			Shortfall: outcome.Shortfall,
			Message: fmt.Sprintf("You need to purchase %d more units of %s to complete this sale.",
				outcome.Shortfall.Missing(), outcome.Shortfall.ProductName),
		}
	default:
		return &models.SubmitResult{
			Kind:    models.SubmitFailure,
			Message: "Failed: " + outcome.Message,
		}
	}
}

func (s *salesService) complete(ctx context.Context, entryID int64, outcome, message string, shortfall *models.Shortfall) {
	if entryID == 0 {
		return
	}
	if err := s.journal.Complete(ctx, entryID, outcome, message, shortfall); err != nil {
		utils.LogError(err, "Failed to complete journal entry", map[string]interface{}{"submission_id": entryID})
	}
}

func (s *salesService) Cancel(ctx context.Context, session *models.Session) error {
	if _, err := s.CurrentDraft(ctx, session); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, session.ID)
}

func (s *salesService) RecentSubmissions(ctx context.Context, session *models.Session) ([]models.Submission, error) {
	return s.journal.ListRecent(ctx, session.RetailerID, s.recentLimit)
}

// fingerprint identifies the token that made a submission without storing it.
func fingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
