// Package ingest sequences one configuration snapshot run: read the file,
// connect, provision the schema, allocate the next version, insert, and
// record the outcome in the audit trail.
package ingest

import (
	"context"
	"fmt"

	"github.com/lottoworks/controller-config/config"
	"github.com/lottoworks/controller-config/models"
	"github.com/lottoworks/controller-config/repositories"
	"github.com/lottoworks/controller-config/services"
	"go.uber.org/zap"
)

// Store is the persistence surface the pipeline runs against
type Store interface {
	ConfigVersions() repositories.ConfigVersionRepository
	TransactionManager() repositories.TransactionManager
	EnsureSchema(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// Connector opens the store. Connection happens inside Run so a connect
// failure is a pipeline stage like any other.
type Connector func(ctx context.Context) (Store, error)

// Recorder is the best-effort audit sink. Implementations never fail the
// caller.
type Recorder interface {
	Record(ctx context.Context, action models.AuditAction, status models.AuditStatus, message string)
}

// Result reports one successful ingest
type Result struct {
	Name     string
	Version  int
	Previous int
}

// Service orchestrates the ingest pipeline
type Service struct {
	cfg      config.LoaderConfig
	connect  Connector
	recorder Recorder
	logger   *zap.Logger
}

// NewService creates a new ingest service
func NewService(cfg config.LoaderConfig, connect Connector, recorder Recorder, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		connect:  connect,
		recorder: recorder,
		logger:   logger,
	}
}

// Run executes one ingest: read -> connect -> provision -> allocate ->
// insert -> commit. Exactly one audit entry is recorded per run: SUCCESS
// with the inserted version, or FAIL with the action of the failing stage.
// All failures return a *services.StageError; the caller maps any error to
// exit code 1.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	s.logger.Info("reading config file", zap.String("path", s.cfg.ConfigPath))

	doc, err := ReadDocument(s.cfg.ConfigPath)
	if err != nil {
		s.logger.Error("config file read failed", zap.Error(err))
		s.recorder.Record(ctx, models.AuditActionInitConfigReadFile, models.AuditStatusFail, err.Error())
		return nil, services.NewStageError(services.StageReadConfig, err)
	}

	s.logger.Info("connecting to database")

	store, err := s.connect(ctx)
	if err != nil {
		s.logger.Error("database connect failed", zap.Error(err))
		s.recorder.Record(ctx, models.AuditActionInitConfigDBConnect, models.AuditStatusFail,
			fmt.Sprintf("connect failed: %v", err))
		return nil, services.NewStageError(services.StageConnect, err)
	}
	defer func() {
		_ = store.Close()
	}()

	if err := store.HealthCheck(ctx); err != nil {
		s.logger.Error("database health check failed", zap.Error(err))
		s.recorder.Record(ctx, models.AuditActionInitConfigDBConnect, models.AuditStatusFail,
			fmt.Sprintf("connect failed: %v", err))
		return nil, services.NewStageError(services.StageConnect, err)
	}

	result, err := s.persist(ctx, store, doc)
	if err != nil {
		s.logger.Error("config ingest failed", zap.Error(err))
		s.recorder.Record(ctx, models.AuditActionInitConfig, models.AuditStatusFail, err.Error())
		return nil, err
	}

	s.logger.Info("config ingested",
		zap.String("name", result.Name),
		zap.Int("version", result.Version),
		zap.Int("previous", result.Previous))
	s.recorder.Record(ctx, models.AuditActionInitConfig, models.AuditStatusSuccess,
		fmt.Sprintf("inserted config %q version %d", result.Name, result.Version))

	return result, nil
}

// persist provisions the schema, then allocates and inserts the new version
// inside one transaction. The version read and the insert share that
// transaction; a concurrent run racing on the same name loses at the
// (name, version) unique constraint and rolls back here.
func (s *Service) persist(ctx context.Context, store Store, doc []byte) (*Result, error) {
	s.logger.Info("provisioning schema")

	if err := store.EnsureSchema(ctx); err != nil {
		return nil, services.NewStageError(services.StageProvision, err)
	}

	name := s.cfg.ConfigName
	result, err := services.WithTransactionResult(ctx, store.TransactionManager(),
		func(txCtx context.Context, _ repositories.Transaction) (*Result, error) {
			next, latest, err := store.ConfigVersions().NextVersion(txCtx, name)
			if err != nil {
				return nil, services.NewStageError(services.StageAllocateVersion, err)
			}

			s.logger.Info("version allocated",
				zap.String("name", name),
				zap.Int("current", latest),
				zap.Int("next", next))

			cv := models.NewConfigVersion(name, next, doc)
			if err := store.ConfigVersions().Insert(txCtx, cv); err != nil {
				return nil, services.NewStageError(services.StageInsert, err)
			}

			return &Result{Name: name, Version: next, Previous: latest}, nil
		})
	if err != nil {
		if services.GetStage(err) != "" {
			return nil, err
		}
		// Begin or commit failed outside the pipeline stages
		return nil, services.NewStageError(services.StageCommit, err)
	}

	return result, nil
}
