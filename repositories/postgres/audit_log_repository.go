package postgres

import (
	"context"
	"fmt"

	"github.com/lottoworks/controller-config/models"
	"github.com/lottoworks/controller-config/repositories"
	"go.uber.org/zap"
)

// AuditLogRepository implements the repositories.AuditLogRepository interface
type AuditLogRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *DB, logger *zap.Logger) repositories.AuditLogRepository {
	return &AuditLogRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends one audit entry
func (r *AuditLogRepository) Insert(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO controller.log (action, status, message)
		VALUES ($1, $2, $3)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query, entry.Action, entry.Status, entry.Message)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	r.logger.Debug("audit entry inserted",
		zap.String("action", string(entry.Action)),
		zap.String("status", string(entry.Status)))
	return nil
}

// ListRecent retrieves audit entries, newest first, paginated
func (r *AuditLogRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, action, status, COALESCE(message, '') AS message, created_at
		FROM controller.log
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryEntries(ctx, query, limit, offset)
}

// ListByAction retrieves audit entries for one action, newest first, paginated
func (r *AuditLogRepository) ListByAction(ctx context.Context, action models.AuditAction, limit, offset int) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, action, status, COALESCE(message, '') AS message, created_at
		FROM controller.log
		WHERE action = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryEntries(ctx, query, action, limit, offset)
}

// queryEntries is a helper method to query multiple audit entries
func (r *AuditLogRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]*models.AuditEntry, error) {
	executor := GetExecutor(ctx, r.db)

	var entries []*models.AuditEntry
	if err := executor.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}

	return entries, nil
}
