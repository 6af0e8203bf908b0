package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/middleware"
	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/services"
)

// SessionHandler holds the session service.
type SessionHandler struct {
	sessionService services.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(ss services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: ss}
}

// Login opens a session for the bearer of a retail API token.
func (h *SessionHandler) Login(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	token := c.GetString(middleware.ContextToken)

	session, err := h.sessionService.Login(c.Request.Context(), userID, token)
	if err != nil {
		respondError(c, "Login: Error from sessionService.Login", "Server error while fetching data.", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"session":  session,
		"products": len(session.Products),
	})
}

// GetSession returns the caller's session.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// Logout ends the session, dropping any pending sale.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Logout(c.Request.Context(), c.GetString(middleware.ContextUserID)); err != nil {
		respondError(c, "Logout: Error from sessionService.Logout", "Failed to log out.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out."})
}

// GetProducts returns the catalog loaded at login.
func (h *SessionHandler) GetProducts(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	products := session.Products
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}
