package app

import (
	"fmt"
	"os"
	"time"

	"tiempo/internal/config"
	"tiempo/internal/database"
	"tiempo/internal/tracker"
)

// App is the application layer between the CLI and the tracker service.
// It constructs all dependencies from config and manages the database and
// log file lifecycle on Close.
type App struct {
	cfg     *config.Config
	store   *database.Store
	service *tracker.Service
	logger  tracker.Logger
	logFile *os.File
}

// NewApp creates a fully wired App from the given config. operation
// identifies the CLI command being run (e.g. "StartSession", "ExportPDF").
// The schema is migrated to the latest version on startup, matching the
// desktop app's create-on-launch behavior. The caller must call Close.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	store, err := database.NewStore(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	logger = logger.With("operation", operation)
	adapter := &slogAdapter{l: logger}
	svc := tracker.NewService(store, adapter, tracker.RealClock{}, tracker.UUIDGenerator{})

	return &App{
		cfg:     cfg,
		store:   store,
		service: svc,
		logger:  adapter,
		logFile: logFile,
	}, nil
}

// Service returns the tracker service.
func (a *App) Service() *tracker.Service {
	return a.service
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the structured logger, for components that log outside
// the service layer (e.g. the lock watcher).
func (a *App) Logger() tracker.Logger {
	return a.logger
}

// Close releases the database handle and the log file.
func (a *App) Close() error {
	var firstErr error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			firstErr = fmt.Errorf("closing database: %w", err)
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
