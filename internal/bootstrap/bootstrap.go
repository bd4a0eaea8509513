package bootstrap

import (
	"context"
	"fmt"

	"statsync-server/internal/clients/klaviyo"
	"statsync-server/internal/config"
	"statsync-server/internal/observability"
	reportingHandler "statsync-server/internal/reporting/handler"
	reportingProcessor "statsync-server/internal/reporting/processor"
	statsyncHandler "statsync-server/internal/statsync/handler"
	statsyncProcessor "statsync-server/internal/statsync/processor"
	"statsync-server/internal/store"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Handlers
	SyncHandler      statsyncHandler.Handler
	ReportingHandler reportingHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	connectionString := cfg.Database.ConnectionString()
	var err error
	deps.Store, err = store.New(connectionString, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Klaviyo clients are built per sync, bound to the account's API key.
	clientFactory := func(apiKey string) statsyncProcessor.UpstreamClient {
		return klaviyo.NewClient(apiKey, logger)
	}

	// Initialize sync processor and handler
	syncProc := statsyncProcessor.New(&deps.Store, clientFactory, cfg.Sync.FreshnessThreshold, cfg.Sync.Timeout, logger)
	deps.SyncHandler = statsyncHandler.New(syncProc, logger)

	// Initialize reporting processor and handler
	reportingProc := reportingProcessor.New(&deps.Store, logger)
	deps.ReportingHandler = reportingHandler.New(reportingProc, logger)

	return deps, nil
}
