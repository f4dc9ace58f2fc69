package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lottoworks/controller-config/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func auditRows(actions ...models.AuditAction) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "action", "status", "message", "created_at"})
	for i, action := range actions {
		rows.AddRow(int64(i+1), string(action), "SUCCESS", "ok", time.Now())
	}
	return rows
}

func TestAuditInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db, zaptest.NewLogger(t))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO controller.log (action, status, message)`)).
		WithArgs(models.AuditActionInitConfig, models.AuditStatusSuccess, `inserted config "lottery" version 1`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := models.NewAuditEntry(models.AuditActionInitConfig, models.AuditStatusSuccess, `inserted config "lottery" version 1`)
	err := repo.Insert(context.Background(), entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditInsert_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db, zaptest.NewLogger(t))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO controller.log`)).
		WillReturnError(assert.AnError)

	entry := models.NewAuditEntry(models.AuditActionInitConfig, models.AuditStatusFail, "boom")
	err := repo.Insert(context.Background(), entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert audit entry")
}

func TestListRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db, zaptest.NewLogger(t))

	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $1 OFFSET $2`)).
		WithArgs(20, 0).
		WillReturnRows(auditRows(models.AuditActionInitConfig, models.AuditActionInitConfigReadFile))

	entries, err := repo.ListRecent(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.AuditActionInitConfig, entries[0].Action)
}

func TestListByAction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db, zaptest.NewLogger(t))

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE action = $1`)).
		WithArgs(models.AuditActionInitConfig, 10, 0).
		WillReturnRows(auditRows(models.AuditActionInitConfig))

	entries, err := repo.ListByAction(context.Background(), models.AuditActionInitConfig, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.AuditActionInitConfig, entries[0].Action)
}

func TestListRecent_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository(db, zaptest.NewLogger(t))

	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $1 OFFSET $2`)).
		WillReturnError(assert.AnError)

	entries, err := repo.ListRecent(context.Background(), 20, 0)
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), "failed to query audit entries")
}
