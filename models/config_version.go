package models

import (
	"encoding/json"
	"time"
)

// ConfigVersion represents one immutable, versioned configuration document
// stored under a logical name. Versions for a name start at 1 and grow by
// one per ingest; existing rows are never updated or deleted.
type ConfigVersion struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Version   int             `json:"version" db:"version"`
	Config    json.RawMessage `json:"config" db:"config"` // JSONB, stored verbatim
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the ConfigVersion model
func (ConfigVersion) TableName() string {
	return "controller.app_config"
}

// NewConfigVersion creates a new ConfigVersion instance
func NewConfigVersion(name string, version int, document json.RawMessage) *ConfigVersion {
	return &ConfigVersion{
		Name:      name,
		Version:   version,
		Config:    document,
		CreatedAt: time.Now(),
	}
}
