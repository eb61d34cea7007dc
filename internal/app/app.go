package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riftlog/riftlog/external/gemini"
	"github.com/riftlog/riftlog/internal/config"
	"github.com/riftlog/riftlog/internal/infrastructure/repository/postgres"
	"github.com/riftlog/riftlog/internal/interfaces/httpapi"
	"github.com/riftlog/riftlog/internal/platform/logging"
	"github.com/riftlog/riftlog/internal/usecase"
)

// App owns the process-wide resources behind the HTTP server.
type App struct {
	Server *http.Server

	db      *sqlx.DB
	extract *usecase.ExtractService
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	visionClient := gemini.NewClient(gemini.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		Timeout:    cfg.GeminiTimeout,
		MaxRetries: cfg.GeminiMaxRetries,
		Logger:     logging.Default().With("component", "gemini"),
	})

	extractSvc, err := usecase.NewExtractService(visionClient, cfg.ExtractMaxConcurrent)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("build extract service: %w", err)
	}

	matchRepo := postgres.NewMatchRepository(db)
	matchSvc := usecase.NewMatchService(matchRepo)

	handler := httpapi.NewHandler(extractSvc, matchSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		extractSvc.Close()
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:  server,
		db:      db,
		extract: extractSvc,
	}, nil
}

// Close releases the worker pool and the database handle. The HTTP
// server is shut down separately by the caller.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.extract != nil {
		a.extract.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
