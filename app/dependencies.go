package app

import (
	"context"

	"github.com/lottoworks/controller-config/config"
	"github.com/lottoworks/controller-config/repositories/postgres"
	"github.com/lottoworks/controller-config/services/audit"
	"github.com/lottoworks/controller-config/services/ingest"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection: config in, a runnable ingest
// pipeline out. No connection is opened here; the pipeline connects inside
// Run so connect failures go through its failure handling.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Recorder *audit.Recorder
	Ingest   *ingest.Service
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(cfg *config.Config, logger *zap.Logger) *Dependencies {
	// Each audit write gets its own short-lived connection against the same
	// database as the primary pipeline.
	auditConnect := func(ctx context.Context) (audit.Sink, error) {
		return postgres.OpenAuditSink(ctx, cfg.Database, logger)
	}
	recorder := audit.NewRecorder(auditConnect, logger)

	storeConnect := func(ctx context.Context) (ingest.Store, error) {
		return postgres.NewStore(ctx, cfg.Database, logger)
	}

	return &Dependencies{
		Config:   cfg,
		Logger:   logger,
		Recorder: recorder,
		Ingest:   ingest.NewService(cfg.Loader, storeConnect, recorder, logger),
	}
}

// Close flushes the logger. The pipeline closes its own store connection;
// nothing else is held open across a run.
func (d *Dependencies) Close() {
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
}
