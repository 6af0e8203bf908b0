package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"retail_voice_backend/internal/config"
	"retail_voice_backend/internal/database"
	"retail_voice_backend/internal/jobs"
	"retail_voice_backend/internal/repositories"
	"retail_voice_backend/internal/retailapi"
	"retail_voice_backend/internal/router"
	"retail_voice_backend/internal/services"
	"retail_voice_backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Repositories
	var journal repositories.SubmissionRepository
	if cfg.JournalEnabled {
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			utils.LogError(err, "Failed to open submission journal database")
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		journal = repositories.NewSubmissionRepository(db)
	} else {
		utils.LogWarn("DB_HOST not set, keeping the submission journal in memory")
		journal = repositories.NewMemorySubmissionRepository()
	}
	sessionRepo := repositories.NewMemorySessionRepository()
	draftRepo := repositories.NewMemoryDraftRepository()

	// Initialize Services
	api := retailapi.NewClient(cfg.RetailAPIURL, cfg.RetailAPITimeout)
	sessionService := services.NewSessionService(api, sessionRepo, draftRepo, cfg.SessionIdleTTL)
	salesService := services.NewSalesService(api, draftRepo, journal, cfg.MatchThreshold, cfg.SubmissionListLimit)
	inventoryService := services.NewInventoryService(api)
	reportService := services.NewReportService(api)

	scheduler, err := jobs.NewScheduler(sessionService, cfg.SessionSweepSpec)
	if err != nil {
		utils.LogError(err, "Failed to schedule background jobs")
		log.Fatalf("Failed to schedule jobs: %v", err)
	}
	scheduler.Start()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, router.Dependencies{
		JWTSecret:    cfg.JWTSecret,
		AllowedRoles: cfg.AllowedRoles,
		Sessions:     sessionService,
		Sales:        salesService,
		Inventory:    inventoryService,
		Reports:      reportService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{
			"port":       cfg.Port,
			"retail_api": cfg.RetailAPIURL,
			"journal_db": cfg.JournalEnabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server shutdown failed")
	}
}
