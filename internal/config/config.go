package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"retail_voice_backend/internal/database"
	"retail_voice_backend/pkg/utils"
)

// Config holds everything the terminal backend reads from the environment.
type Config struct {
	Port               string
	LogLevel           string
	LogPretty          bool
	CORSAllowedOrigins []string

	RetailAPIURL     string
	RetailAPITimeout time.Duration
	JWTSecret        []byte
	AllowedRoles     []string

	MatchThreshold float64

	SessionIdleTTL      time.Duration
	SessionSweepSpec    string
	JournalEnabled      bool
	Database            database.Config
	SubmissionListLimit int
}

// Load reads the environment, after loading a .env file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             utils.Getenv("PORT", "8080"),
		LogLevel:         utils.Getenv("LOG_LEVEL", "info"),
		LogPretty:        utils.Getenv("LOG_FORMAT", "console") == "console",
		RetailAPIURL:     utils.Getenv("RETAIL_API_URL", "http://localhost:5000"),
		RetailAPITimeout: utils.GetenvDuration("RETAIL_API_TIMEOUT", 10*time.Second),
		JWTSecret:        []byte(utils.Getenv("JWT_SECRET", "")),
		MatchThreshold:   0.4,
		SessionIdleTTL:   utils.GetenvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		SessionSweepSpec: utils.Getenv("SESSION_SWEEP_SPEC", "@every 1m"),
		JournalEnabled:   utils.Getenv("DB_HOST", "") != "",
		Database: database.Config{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "voice_terminal"),
			Password:   utils.Getenv("DB_PASSWORD", ""),
			Name:       utils.Getenv("DB_NAME", "voice_terminal"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		SubmissionListLimit: utils.GetenvInt("SUBMISSION_LIST_LIMIT", 50),
	}

	cfg.CORSAllowedOrigins = splitList(utils.Getenv("CORS_ALLOWED_ORIGINS", ""))
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	cfg.AllowedRoles = splitList(utils.Getenv("ALLOWED_ROLES", ""))

	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET environment variable is empty")
	}
	if cfg.RetailAPIURL == "" {
		return nil, errors.New("RETAIL_API_URL environment variable is empty")
	}
	return cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
