package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edudata/assessments-ingress/pkg/config"
	"github.com/edudata/assessments-ingress/pkg/pipeline"
)

func main() {
	// A missing .env is fine; the config layer carries defaults
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	pm, err := pipeline.NewPipelineManager(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create pipeline", zap.Error(err))
	}

	result, err := pm.Run(context.Background())
	if err != nil {
		logger.Fatal("Cleaning run failed", zap.Error(err))
	}

	fmt.Println(pm.GenerateRunReport())

	logger.Info("Done",
		zap.String("runID", result.RunID),
		zap.Int("rowsWritten", result.RowsWritten),
		zap.Duration("duration", result.Duration))
}

// buildLogger constructs a zap logger according to the configured level
// and format
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
