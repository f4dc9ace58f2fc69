package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/lottoworks/controller-config/app"
	"github.com/lottoworks/controller-config/config"
	"github.com/lottoworks/controller-config/internal/observability"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

// run executes one ingest and maps its outcome to the process exit code:
// 0 on success, 1 on any failure. No other codes are used.
func run() int {
	logger, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stdout, "FAIL: logger init: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx := context.Background()

	cfg, err := config.New(ctx)
	if err != nil {
		logger.Error("configuration load failed", zap.Error(err))
		return 1
	}

	logger = logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("config loader starting",
		zap.String("config_path", cfg.Loader.ConfigPath),
		zap.String("config_name", cfg.Loader.ConfigName),
		zap.String("database", cfg.Database.LogString()))

	deps := app.NewDependencies(cfg, logger)
	defer deps.Close()

	result, err := deps.Ingest.Run(ctx)
	if err != nil {
		return 1
	}

	logger.Info("run complete",
		zap.String("name", result.Name),
		zap.Int("version", result.Version))
	return 0
}

// initLogger builds the process logger from LOG_LEVEL and LOG_FORMAT. It
// reads the environment directly because it runs before config.New.
func initLogger() (*zap.Logger, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "console"
	}
	return observability.NewLogger(level, format)
}
