package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lottoworks/controller-config/models"
	"github.com/lottoworks/controller-config/repositories"
	"go.uber.org/zap"
)

// ConfigVersionRepository implements the repositories.ConfigVersionRepository interface
type ConfigVersionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewConfigVersionRepository creates a new config version repository
func NewConfigVersionRepository(db *DB, logger *zap.Logger) repositories.ConfigVersionRepository {
	return &ConfigVersionRepository{
		db:     db,
		logger: logger,
	}
}

// NextVersion computes the version to assign for the next snapshot of name.
// It runs on the caller's transaction when one is present in the context.
// No explicit locking: under concurrent runs the (name, version) unique
// constraint rejects the losing insert.
func (r *ConfigVersionRepository) NextVersion(ctx context.Context, name string) (int, int, error) {
	query := `SELECT COALESCE(MAX(version), 0) FROM controller.app_config WHERE name = $1`

	executor := GetExecutor(ctx, r.db)

	var latest int
	if err := executor.GetContext(ctx, &latest, query, name); err != nil {
		return 0, 0, fmt.Errorf("failed to read current version for %q: %w", name, err)
	}

	r.logger.Debug("version allocated",
		zap.String("name", name),
		zap.Int("latest", latest),
		zap.Int("next", latest+1))

	return latest + 1, latest, nil
}

// Insert persists one new immutable snapshot row. Errors, including the
// unique-constraint violation from a version race, propagate to the caller's
// transaction-management logic.
func (r *ConfigVersionRepository) Insert(ctx context.Context, cv *models.ConfigVersion) error {
	query := `
		INSERT INTO controller.app_config (name, version, config)
		VALUES ($1, $2, $3::jsonb)
	`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, cv.Name, cv.Version, []byte(cv.Config)); err != nil {
		return fmt.Errorf("failed to insert config version: %w", err)
	}

	r.logger.Debug("config version inserted",
		zap.String("name", cv.Name),
		zap.Int("version", cv.Version))
	return nil
}

// GetByNameVersion retrieves one snapshot by its (name, version) key
func (r *ConfigVersionRepository) GetByNameVersion(ctx context.Context, name string, version int) (*models.ConfigVersion, error) {
	query := `
		SELECT id, name, version, config, created_at
		FROM controller.app_config
		WHERE name = $1 AND version = $2
	`

	executor := GetExecutor(ctx, r.db)
	cv := &models.ConfigVersion{}

	if err := executor.GetContext(ctx, cv, query, name, version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("config %q version %d not found: %w", name, version, err)
		}
		return nil, fmt.Errorf("failed to get config version: %w", err)
	}

	return cv, nil
}

// Latest retrieves the highest-versioned snapshot for name, served by the
// (name, version DESC) index
func (r *ConfigVersionRepository) Latest(ctx context.Context, name string) (*models.ConfigVersion, error) {
	query := `
		SELECT id, name, version, config, created_at
		FROM controller.app_config
		WHERE name = $1
		ORDER BY version DESC
		LIMIT 1
	`

	executor := GetExecutor(ctx, r.db)
	cv := &models.ConfigVersion{}

	if err := executor.GetContext(ctx, cv, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("config %q not found: %w", name, err)
		}
		return nil, fmt.Errorf("failed to get latest config version: %w", err)
	}

	return cv, nil
}

// ListVersions retrieves snapshots for name, newest first, paginated
func (r *ConfigVersionRepository) ListVersions(ctx context.Context, name string, limit, offset int) ([]*models.ConfigVersion, error) {
	query := `
		SELECT id, name, version, config, created_at
		FROM controller.app_config
		WHERE name = $1
		ORDER BY version DESC
		LIMIT $2 OFFSET $3
	`

	executor := GetExecutor(ctx, r.db)
	var versions []*models.ConfigVersion

	if err := executor.SelectContext(ctx, &versions, query, name, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list config versions: %w", err)
	}

	return versions, nil
}
