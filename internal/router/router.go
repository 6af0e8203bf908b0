package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/handlers"
	"retail_voice_backend/internal/middleware"
	"retail_voice_backend/internal/services"
)

// Dependencies are the services and settings the routes are built from.
type Dependencies struct {
	JWTSecret    []byte
	AllowedRoles []string // empty allows every role

	Sessions  services.SessionService
	Sales     services.SalesService
	Inventory services.InventoryService
	Reports   services.ReportService
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	// Initialize Handlers
	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	voiceHandler := handlers.NewVoiceHandler(deps.Sessions, deps.Sales)
	inventoryHandler := handlers.NewInventoryHandler(deps.Inventory)
	reportHandler := handlers.NewReportHandler(deps.Reports)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(deps.JWTSecret))
	if len(deps.AllowedRoles) > 0 {
		authenticated.Use(middleware.RoleAuthMiddleware(deps.AllowedRoles...))
	}
	{
		// Login only needs a valid token; everything else needs a session.
		authenticated.POST("/session", sessionHandler.Login)

		withSession := authenticated.Group("")
		withSession.Use(middleware.SessionMiddleware(deps.Sessions))
		{
			SetupSessionRoutes(withSession, sessionHandler)
			SetupVoiceRoutes(withSession, voiceHandler)
			SetupInventoryRoutes(withSession, inventoryHandler)
			SetupSalesRoutes(withSession, reportHandler)
		}
	}
}
