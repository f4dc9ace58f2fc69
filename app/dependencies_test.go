package app

import (
	"testing"
	"time"

	"github.com/lottoworks/controller-config/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "n8n",
			Password:        "n8n_pass",
			Database:        "n8n_data",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Loader: config.LoaderConfig{
			ConfigPath: "./config_lottery.json",
			ConfigName: "lottery",
		},
		Observability: config.ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

func TestNewDependencies(t *testing.T) {
	cfg := testConfig()
	logger := zaptest.NewLogger(t)

	// Wiring opens no connections; that happens inside Run
	deps := NewDependencies(cfg, logger)
	require.NotNil(t, deps)

	assert.Same(t, cfg, deps.Config)
	assert.NotNil(t, deps.Recorder)
	assert.NotNil(t, deps.Ingest)

	deps.Close()
}
