package router

import (
	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/handlers"
)

// SetupSessionRoutes sets up the session and catalog routes.
func SetupSessionRoutes(sessionGroup *gin.RouterGroup, sessionHandler *handlers.SessionHandler) {
	sessionGroup.GET("/session", sessionHandler.GetSession)
	sessionGroup.DELETE("/session", sessionHandler.Logout)
	sessionGroup.GET("/products", sessionHandler.GetProducts)
}

// SetupVoiceRoutes sets up the voice sales flow routes.
func SetupVoiceRoutes(sessionGroup *gin.RouterGroup, voiceHandler *handlers.VoiceHandler) {
	voiceRoutes := sessionGroup.Group("/voice")
	{
		voiceRoutes.POST("/utterance", voiceHandler.SubmitUtterance)
		voiceRoutes.GET("/draft", voiceHandler.GetDraft)
		voiceRoutes.POST("/draft/confirm", voiceHandler.ConfirmDraft)
		voiceRoutes.DELETE("/draft", voiceHandler.CancelDraft)
		voiceRoutes.GET("/submissions", voiceHandler.GetSubmissions)
	}
}

// SetupInventoryRoutes sets up the inventory panel routes.
func SetupInventoryRoutes(sessionGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := sessionGroup.Group("/inventory")
	{
		inventoryRoutes.GET("", inventoryHandler.GetInventory)
		inventoryRoutes.POST("/fix", inventoryHandler.FixInventory)
	}
}

// SetupSalesRoutes sets up the sales events and summary routes.
func SetupSalesRoutes(sessionGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	salesRoutes := sessionGroup.Group("/sales")
	{
		salesRoutes.GET("/events", reportHandler.GetSalesEvents)
		salesRoutes.GET("/events/export", reportHandler.ExportSalesEvents)
		salesRoutes.GET("/summary", reportHandler.GetSalesSummary)
		salesRoutes.GET("/summary/export", reportHandler.ExportSalesSummary)
	}
}
