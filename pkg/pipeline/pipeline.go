// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edudata/assessments-ingress/pkg/cleaner"
	"github.com/edudata/assessments-ingress/pkg/config"
	"github.com/edudata/assessments-ingress/pkg/loader"
	"github.com/edudata/assessments-ingress/pkg/model"
	"github.com/edudata/assessments-ingress/pkg/report"
)

// PipelineManager orchestrates one cleaning run: load, clean, write.
// The run is single-threaded and fully sequential; each stage materializes
// before the next begins.
type PipelineManager struct {
	cfg     *config.Config
	loader  *loader.Loader
	writer  *report.Writer
	metrics *RunMetrics
	logger  *zap.Logger
}

// RunResult represents the outcome of a pipeline run
type RunResult struct {
	RunID             string
	RowsRead          int
	RowsWritten       int
	NullDates         int
	DuplicatesRemoved int
	CleaningOps       int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

// NewPipelineManager creates a new pipeline manager
func NewPipelineManager(cfg *config.Config, logger *zap.Logger) (*PipelineManager, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	l, err := loader.NewLoader(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create loader: %w", err)
	}

	w, err := report.NewWriter(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer: %w", err)
	}

	return &PipelineManager{
		cfg:     cfg,
		loader:  l,
		writer:  w,
		metrics: NewRunMetrics(logger),
		logger:  logger,
	}, nil
}

// Run executes the pipeline once. The run either fully completes, producing
// both output files, or aborts with an error and no output contract.
func (pm *PipelineManager) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.New().String()
	result := &RunResult{RunID: runID, StartTime: time.Now()}

	pm.logger.Info("Starting cleaning run",
		zap.String("runID", runID),
		zap.String("input", pm.cfg.InputPath),
		zap.String("output", pm.cfg.OutputPath))

	// Load
	pm.metrics.StartStage(StageLoad)
	t, err := pm.loader.Load(pm.cfg.InputPath)
	pm.metrics.EndStage(StageLoad)
	if err != nil {
		return nil, fmt.Errorf("load stage failed: %w", err)
	}
	result.RowsRead = t.NumRows()
	pm.metrics.RecordRowsRead(t.NumRows())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Clean
	dc, err := cleaner.NewDataCleaner(pm.logger, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}

	pm.metrics.StartStage(StageClean)
	cleanResult, err := dc.Clean(t)
	pm.metrics.EndStage(StageClean)
	if err != nil {
		return nil, fmt.Errorf("clean stage failed: %w", err)
	}

	// Header names are already canonical; the explicit rename keeps the run
	// honest should upstream exports ever drift.
	if err := t.RenameColumns(model.CanonicalHeaders()); err != nil {
		return nil, fmt.Errorf("header rename failed: %w", err)
	}

	result.NullDates = cleanResult.NullDatesAfter
	result.DuplicatesRemoved = cleanResult.DuplicatesRemoved
	result.CleaningOps = cleanResult.Operations
	pm.metrics.RecordCleaning(cleanResult)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Write
	pm.metrics.StartStage(StageWrite)
	if err := pm.writer.WriteCSV(t, pm.cfg.OutputPath); err != nil {
		pm.metrics.EndStage(StageWrite)
		return nil, fmt.Errorf("write stage failed: %w", err)
	}

	summary := report.Summary{
		InputFile:         filepath.Base(pm.cfg.InputPath),
		OutputFile:        filepath.Base(pm.cfg.OutputPath),
		NullDatesBefore:   cleanResult.NullDatesBefore,
		NullDatesAfter:    cleanResult.NullDatesAfter,
		DuplicatesRemoved: cleanResult.DuplicatesRemoved,
		RowsBefore:        cleanResult.RowsBefore,
		RowsAfter:         cleanResult.RowsAfter,
		CellsTrimmed:      cleanResult.CellsTrimmed,
		WeightsNulled:     cleanResult.WeightsNulled,
		Dtypes:            t.Dtypes(),
	}
	if err := pm.writer.WriteSummary(pm.cfg.ReportPath, summary); err != nil {
		pm.metrics.EndStage(StageWrite)
		return nil, fmt.Errorf("write stage failed: %w", err)
	}
	pm.metrics.EndStage(StageWrite)

	result.RowsWritten = t.NumRows()
	pm.metrics.RecordRowsWritten(t.NumRows())

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	pm.logger.Info("Cleaning run completed",
		zap.String("runID", runID),
		zap.Int("rowsRead", result.RowsRead),
		zap.Int("rowsWritten", result.RowsWritten),
		zap.Int("duplicatesRemoved", result.DuplicatesRemoved),
		zap.Int("cleaningOps", result.CleaningOps),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// GenerateRunReport creates a plain-text diagnostic report for the run
func (pm *PipelineManager) GenerateRunReport() string {
	return pm.metrics.GenerateRunReport()
}
