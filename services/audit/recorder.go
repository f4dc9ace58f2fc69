// Package audit implements the best-effort audit trail writer. A Record call
// never fails from the caller's perspective: every internal error degrades
// to a WARN line naming the dropped entry.
package audit

import (
	"context"

	"github.com/lottoworks/controller-config/models"
	"go.uber.org/zap"
)

// Sink is one short-lived audit connection: provision the audit table,
// write one row, close.
type Sink interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, entry *models.AuditEntry) error
	Close() error
}

// ConnectFunc opens a dedicated sink for a single audit write
type ConnectFunc func(ctx context.Context) (Sink, error)

// Recorder writes audit entries on their own short-lived connection,
// independent of the pipeline's primary connection. Losing an entry must
// never mask or block the primary operation's outcome, so every failure is
// absorbed here.
type Recorder struct {
	connect ConnectFunc
	logger  *zap.Logger
}

// NewRecorder creates a new best-effort audit recorder
func NewRecorder(connect ConnectFunc, logger *zap.Logger) *Recorder {
	return &Recorder{
		connect: connect,
		logger:  logger,
	}
}

// Record writes one audit entry, best-effort. It opens its own connection,
// ensures the audit table exists, inserts the row, and closes the
// connection on every path. It never returns an error and never panics the
// caller's run.
func (r *Recorder) Record(ctx context.Context, action models.AuditAction, status models.AuditStatus, message string) {
	sink, err := r.connect(ctx)
	if err != nil {
		r.warnDropped(action, status, message, err)
		return
	}
	defer func() {
		_ = sink.Close()
	}()

	if err := sink.EnsureSchema(ctx); err != nil {
		r.warnDropped(action, status, message, err)
		return
	}

	entry := models.NewAuditEntry(action, status, message)
	if err := sink.Insert(ctx, entry); err != nil {
		r.warnDropped(action, status, message, err)
		return
	}

	r.logger.Debug("audit entry recorded",
		zap.String("action", string(action)),
		zap.String("status", string(status)))
}

// warnDropped names the entry that was lost and why
func (r *Recorder) warnDropped(action models.AuditAction, status models.AuditStatus, message string, err error) {
	r.logger.Warn("dropping audit entry",
		zap.Error(err),
		zap.String("action", string(action)),
		zap.String("status", string(status)),
		zap.String("message", message))
}
