package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/internal/services"
	"retail_voice_backend/pkg/utils"
)

// Context keys set by the middlewares below.
const (
	ContextUserID  = "userID"
	ContextRole    = "userRole"
	ContextToken   = "token"
	ContextSession = "session"
)

// AuthMiddleware validates the bearer token issued by the retail API and puts
// the caller's identity and raw token in the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextToken, tokenString)

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the user role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr := c.GetString(ContextRole)
		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				c.Next()
				return
			}
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to access this resource.",
			"Required roles: "+strings.Join(allowedRoles, ", ")))
	}
}

// SessionMiddleware loads the caller's session and marks it active.
// Must run after AuthMiddleware.
func SessionMiddleware(sessions services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		session, err := sessions.Get(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrSessionNotFound) {
				utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeSessionRequired, "Please log in to continue.", ""))
				return
			}
			utils.LogError(err, "Failed to load session", map[string]interface{}{"user_id": userID})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load session", ""))
			return
		}
		if err := sessions.Touch(c.Request.Context(), userID); err != nil {
			utils.LogWarn("Failed to refresh session activity", map[string]interface{}{"user_id": userID, "error": err.Error()})
		}

		c.Set(ContextSession, session)
		c.Next()
	}
}

// SessionFromContext returns the session stored by SessionMiddleware.
func SessionFromContext(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok
}
