package models

import "time"

// AuditAction identifies the operation an audit entry reports on
type AuditAction string

const (
	AuditActionInitConfig          AuditAction = "INIT_CONFIG"
	AuditActionInitConfigReadFile  AuditAction = "INIT_CONFIG_READ_FILE"
	AuditActionInitConfigDBConnect AuditAction = "INIT_CONFIG_DB_CONNECT"
)

// AuditStatus represents the outcome recorded by an audit entry
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "SUCCESS"
	AuditStatusFail    AuditStatus = "FAIL"
)

// AuditEntry represents one row of the controller.log audit trail.
// Entries are append-only and fire-and-forget: a failed write is dropped,
// never retried.
type AuditEntry struct {
	ID        int64       `json:"id" db:"id"`
	Action    AuditAction `json:"action" db:"action"`
	Status    AuditStatus `json:"status" db:"status"`
	Message   string      `json:"message,omitempty" db:"message"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the AuditEntry model
func (AuditEntry) TableName() string {
	return "controller.log"
}

// NewAuditEntry creates a new AuditEntry instance
func NewAuditEntry(action AuditAction, status AuditStatus, message string) *AuditEntry {
	return &AuditEntry{
		Action:    action,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
