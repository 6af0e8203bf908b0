package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/services"
	"retail_voice_backend/internal/voice"
)

// UtteranceRequest is what the browser posts after one recognition attempt.
// Error carries the recognizer's error code when recognition failed, and
// Unsupported is set when the browser has no speech recognition at all.
type UtteranceRequest struct {
	Transcript  string `json:"transcript"`
	Error       string `json:"error"`
	Unsupported bool   `json:"unsupported"`
}

// ConfirmRequest names the draft being confirmed.
type ConfirmRequest struct {
	DraftID string `json:"draftId"`
}

// VoiceHandler holds the services behind the voice sales flow.
type VoiceHandler struct {
	sessionService services.SessionService
	salesService   services.SalesService
}

// NewVoiceHandler creates a new VoiceHandler.
func NewVoiceHandler(ss services.SessionService, sales services.SalesService) *VoiceHandler {
	return &VoiceHandler{sessionService: ss, salesService: sales}
}

func (r UtteranceRequest) recognizer() voice.Recognizer {
	switch {
	case r.Unsupported:
		return nil
	case r.Error != "":
		return voice.FailedRecognizer(r.Error)
	default:
		return voice.TranscriptRecognizer(r.Transcript)
	}
}

// SubmitUtterance turns one utterance into a sale draft awaiting confirmation.
func (h *VoiceHandler) SubmitUtterance(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req UtteranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	capturer := h.sessionService.Capturer(session.ID)
	draft, err := h.salesService.StartFromUtterance(c.Request.Context(), session, capturer, req.recognizer())
	if err != nil {
		respondError(c, "SubmitUtterance: Error from salesService.StartFromUtterance", "Server error while fetching data.", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "draft": draft})
}

// GetDraft returns the sale awaiting confirmation.
func (h *VoiceHandler) GetDraft(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	draft, err := h.salesService.CurrentDraft(c.Request.Context(), session)
	if err != nil {
		respondError(c, "GetDraft: Error from salesService.CurrentDraft", "Failed to fetch draft.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": draft})
}

// ConfirmDraft submits the pending sale. Every outcome the retail API returns
// is a 200 with a tagged result; only local rejections are errors.
func (h *VoiceHandler) ConfirmDraft(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req ConfirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
	}

	result, err := h.salesService.Confirm(c.Request.Context(), session, req.DraftID)
	if err != nil {
		respondError(c, "ConfirmDraft: Error from salesService.Confirm", "Server error while logging sale.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": result.Kind == models.SubmitRecorded,
		"result":  result,
	})
}

// CancelDraft discards the pending sale.
func (h *VoiceHandler) CancelDraft(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	if err := h.salesService.Cancel(c.Request.Context(), session); err != nil {
		respondError(c, "CancelDraft: Error from salesService.Cancel", "Failed to cancel sale.", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSubmissions lists the retailer's recent journaled submissions.
func (h *VoiceHandler) GetSubmissions(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	submissions, err := h.salesService.RecentSubmissions(c.Request.Context(), session)
	if err != nil {
		respondError(c, "GetSubmissions: Error from salesService.RecentSubmissions", "Failed to fetch submissions.", err)
		return
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": submissions})
}
