package postgres

import (
	"context"

	"github.com/lottoworks/controller-config/config"
	"github.com/lottoworks/controller-config/models"
	"github.com/lottoworks/controller-config/repositories"
	"go.uber.org/zap"
)

// Store bundles the database handle with its repositories and transaction
// manager. It is the persistence surface the ingest pipeline runs against.
type Store struct {
	db     *DB
	repos  *repositories.Repositories
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewStore connects to the database and wires up the repositories
func NewStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	db, err := Connect(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewStoreWithDB(db, logger), nil
}

// NewStoreWithDB wires a Store over an existing handle. Used by tests to
// inject a mocked connection.
func NewStoreWithDB(db *DB, logger *zap.Logger) *Store {
	return &Store{
		db: db,
		repos: &repositories.Repositories{
			ConfigVersions: NewConfigVersionRepository(db, logger),
			AuditLogs:      NewAuditLogRepository(db, logger),
		},
		txMgr:  NewTransactionManager(db, logger),
		logger: logger,
	}
}

// ConfigVersions returns the versioned-config repository
func (s *Store) ConfigVersions() repositories.ConfigVersionRepository {
	return s.repos.ConfigVersions
}

// AuditLogs returns the audit trail repository
func (s *Store) AuditLogs() repositories.AuditLogRepository {
	return s.repos.AuditLogs
}

// TransactionManager returns the transaction manager
func (s *Store) TransactionManager() repositories.TransactionManager {
	return s.txMgr
}

// EnsureSchema idempotently provisions all schema objects
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.db.EnsureSchema(ctx)
}

// HealthCheck verifies the connection is live
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// AuditSink is one short-lived audit connection used by the best-effort
// recorder. Each Record call opens one, writes one row, and closes it.
type AuditSink struct {
	db   *DB
	repo repositories.AuditLogRepository
}

// OpenAuditSink opens a dedicated connection for a single audit write
func OpenAuditSink(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*AuditSink, error) {
	db, err := Connect(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &AuditSink{
		db:   db,
		repo: NewAuditLogRepository(db, logger),
	}, nil
}

// EnsureSchema provisions the audit subset of the schema
func (s *AuditSink) EnsureSchema(ctx context.Context) error {
	return s.db.EnsureAuditSchema(ctx)
}

// Insert appends one audit entry
func (s *AuditSink) Insert(ctx context.Context, entry *models.AuditEntry) error {
	return s.repo.Insert(ctx, entry)
}

// Close releases the sink's connection
func (s *AuditSink) Close() error {
	return s.db.Close()
}
