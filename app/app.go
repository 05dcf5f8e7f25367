package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"elotec-nettbutikk/app/controller"
	"elotec-nettbutikk/app/router"
	"elotec-nettbutikk/metrics"
	"elotec-nettbutikk/service"
)

const (
	defaultSessionTTL  = 30 * time.Minute
	defaultMaxUploadMB = 32
)

// Config is read from the environment
type Config struct {
	BaseURL         string
	SessionTTL      time.Duration
	MaxUploadBytes  int64
	CredentialsPath string
}

// LoadConfig reads the configuration from environment variables
func LoadConfig(port string) (*Config, error) {
	cfg := &Config{
		BaseURL:         os.Getenv("BASE_URL"),
		SessionTTL:      defaultSessionTTL,
		MaxUploadBytes:  defaultMaxUploadMB << 20,
		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + port
	}

	if v := os.Getenv("EXPORT_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid EXPORT_SESSION_TTL %q", v)
		}
		cfg.SessionTTL = ttl
	}

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.Atoi(v)
		if err != nil || mb <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_MB %q", v)
		}
		cfg.MaxUploadBytes = int64(mb) << 20
	}

	return cfg, nil
}

// Initialize initializes the application
func Initialize(ctx context.Context, mux *http.ServeMux, cfg *Config) error {
	registry := metrics.NewRegistry()

	store := service.NewSessionStore(cfg.SessionTTL)
	store.StartJanitor(ctx, time.Minute)

	exportService := service.NewExportService(store, registry)

	previewService, err := service.NewPreviewService(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize preview service: %w", err)
	}

	// Drive import is optional
	var driveService service.DriveServiceInterface
	if cfg.CredentialsPath != "" {
		ds, err := service.NewDriveService(cfg.CredentialsPath)
		if err != nil {
			return err
		}
		driveService = ds
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS is not set, Drive import disabled")
	}

	// Create controllers
	controllers := &router.Controllers{
		Export:  controller.NewExportController(exportService, previewService, registry, cfg.MaxUploadBytes),
		Drive:   controller.NewDriveController(driveService, exportService),
		Metrics: registry.Handler(),
	}

	router.SetupRoutes(mux, controllers)

	return nil
}
