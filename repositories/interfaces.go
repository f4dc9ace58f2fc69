package repositories

import (
	"context"

	"github.com/lottoworks/controller-config/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context. Repositories resolve their
	// executor from it, so queries issued under this context run on the
	// transaction rather than the pool.
	Context() context.Context
}

// ConfigVersionRepository handles versioned configuration snapshots
type ConfigVersionRepository interface {
	// NextVersion returns the version to assign for the next snapshot of
	// name (latest+1) along with the current latest (0 when none exist)
	NextVersion(ctx context.Context, name string) (next int, latest int, err error)

	// Insert persists one new immutable snapshot row
	Insert(ctx context.Context, cv *models.ConfigVersion) error

	// GetByNameVersion retrieves one snapshot by its (name, version) key
	GetByNameVersion(ctx context.Context, name string, version int) (*models.ConfigVersion, error)

	// Latest retrieves the highest-versioned snapshot for name
	Latest(ctx context.Context, name string) (*models.ConfigVersion, error)

	// ListVersions retrieves snapshots for name, newest first, paginated
	ListVersions(ctx context.Context, name string, limit, offset int) ([]*models.ConfigVersion, error)
}

// AuditLogRepository handles append-only audit trail entries
type AuditLogRepository interface {
	// Insert appends one audit entry
	Insert(ctx context.Context, entry *models.AuditEntry) error

	// ListRecent retrieves audit entries, newest first, paginated
	ListRecent(ctx context.Context, limit, offset int) ([]*models.AuditEntry, error)

	// ListByAction retrieves audit entries for one action, newest first, paginated
	ListByAction(ctx context.Context, action models.AuditAction, limit, offset int) ([]*models.AuditEntry, error)
}

// Repositories groups all repository instances
type Repositories struct {
	ConfigVersions ConfigVersionRepository
	AuditLogs      AuditLogRepository
}
