package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Standardized APIError response.
// Message is what the terminal shows the user as an alert.
type APIError struct {
	StatusCode int    `json:"-"`              // HTTP status code, not included in JSON response body for error itself
	Code       string `json:"code,omitempty"` // Application-specific error code
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// NewAPIError creates a new APIError instance
func NewAPIError(statusCode int, code string, message string, details string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Details:    details,
	}
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// RespondWithError sends a standardized JSON error response
func RespondWithError(c *gin.Context, err *APIError) {
	c.JSON(err.StatusCode, gin.H{"success": false, "error": err})
	c.Abort()
}

const (
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeConflict              = "CONFLICT"
	ErrCodeInternalServerError   = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeUpstreamFailure       = "UPSTREAM_FAILURE"
	ErrCodeNoMatch               = "NO_PRODUCT_MATCH"
	ErrCodeRecognitionFailed     = "RECOGNITION_FAILED"
	ErrCodeCaptureBusy           = "CAPTURE_BUSY"
	ErrCodeInsufficientInventory = "INSUFFICIENT_INVENTORY"
	ErrCodeSessionRequired       = "SESSION_REQUIRED"
)

// RespondValidationFailed returns a standard validation error.
func RespondValidationFailed(c *gin.Context, details string) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeValidationFailed, "Input validation failed", details))
}
