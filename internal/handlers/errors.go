package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/matcher"
	"retail_voice_backend/internal/middleware"
	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/retailapi"
	"retail_voice_backend/internal/services"
	"retail_voice_backend/internal/voice"
	"retail_voice_backend/pkg/utils"
)

// respondError maps service and upstream errors onto the API error envelope.
// fallback is the message used for unexpected errors.
func respondError(c *gin.Context, op string, fallback string, err error) {
	utils.LogError(err, op, map[string]interface{}{"user_id": c.GetString(middleware.ContextUserID)})

	var reqErr *retailapi.RequestError
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeSessionRequired, "Please log in to continue.", ""))
	case errors.Is(err, retailapi.ErrUnauthorized):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication token not found. Please log in again.", err.Error()))
	case errors.Is(err, services.ErrNoRetailers):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No retailers found.", ""))
	case errors.Is(err, services.ErrRetailerNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Retailer not found for this user.", ""))
	case errors.Is(err, services.ErrNoDraft):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No sale is awaiting confirmation.", ""))
	case errors.Is(err, services.ErrMissingSaleData):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeValidationFailed, "Missing required data. Please try again.", ""))
	case errors.Is(err, services.ErrStockGateClosed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInsufficientInventory, "Not enough stock to confirm this sale.", ""))
	case errors.Is(err, services.ErrDuplicateSubmission):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "This sale was already submitted.", ""))
	case errors.Is(err, services.ErrInvalidFilter):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid filter.", err.Error()))
	case errors.Is(err, matcher.ErrNoMatch):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeNoMatch, "Could not match product. Please try again.", ""))
	case errors.Is(err, voice.ErrCaptureBusy):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeCaptureBusy, "Already listening. Please wait.", ""))
	case errors.Is(err, voice.ErrUnsupported):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeRecognitionFailed, "Speech recognition not supported in this browser.", ""))
	case errors.Is(err, voice.ErrRecognition), errors.Is(err, voice.ErrNoSpeech),
		errors.Is(err, voice.ErrInvalidQuantity), errors.Is(err, voice.ErrCaptureClosed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeRecognitionFailed, "Speech recognition error. Please try again.", err.Error()))
	case errors.As(err, &reqErr):
		message := reqErr.Message
		if message == "" {
			message = fallback
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeUpstreamFailure, message, ""))
	case errors.Is(err, retailapi.ErrTransport), errors.Is(err, retailapi.ErrUnexpectedResponse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeUpstreamFailure, "Server error while fetching data.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, fallback, "Internal error"))
	}
}

// currentSession reads the session set by middleware.SessionMiddleware.
func currentSession(c *gin.Context) (*models.Session, bool) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeSessionRequired, "Please log in to continue.", ""))
		return nil, false
	}
	return session, true
}

func respondValidation(c *gin.Context, err error) {
	utils.LogError(err, "Failed to bind request")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
}
