// pkg/pipeline/metrics.go
package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edudata/assessments-ingress/pkg/cleaner"
)

// Stage identifies a pipeline stage for metrics tracking
type Stage string

const (
	// StageLoad covers reading the input CSV into the table
	StageLoad Stage = "load"
	// StageClean covers the ordered cleaning operations
	StageClean Stage = "clean"
	// StageWrite covers serializing the CSV and the summary report
	StageWrite Stage = "write"
)

// stageTiming tracks the start and end of a single stage
type stageTiming struct {
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the elapsed time of the stage
func (st stageTiming) Duration() time.Duration {
	if st.EndTime.IsZero() {
		return time.Since(st.StartTime)
	}
	return st.EndTime.Sub(st.StartTime)
}

// RunMetrics tracks metrics for a single pipeline run. The pipeline is
// strictly sequential, so no locking is needed.
type RunMetrics struct {
	logger            *zap.Logger
	StartTime         time.Time
	stages            map[Stage]*stageTiming
	RowsRead          int
	RowsWritten       int
	NullDates         int
	DuplicatesRemoved int
	CellsTrimmed      int
	WeightsNulled     int
	CleaningOps       int
}

// NewRunMetrics creates a new RunMetrics instance
func NewRunMetrics(logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		logger:    logger,
		StartTime: time.Now(),
		stages:    make(map[Stage]*stageTiming),
	}
}

// StartStage begins timing a stage
func (rm *RunMetrics) StartStage(stage Stage) {
	rm.stages[stage] = &stageTiming{StartTime: time.Now()}
}

// EndStage completes timing a stage
func (rm *RunMetrics) EndStage(stage Stage) {
	if st, ok := rm.stages[stage]; ok {
		st.EndTime = time.Now()

		if rm.logger != nil {
			rm.logger.Debug("Stage completed",
				zap.String("stage", string(stage)),
				zap.Duration("duration", st.Duration()))
		}
	}
}

// StageDuration returns the duration of a stage, zero if never started
func (rm *RunMetrics) StageDuration(stage Stage) time.Duration {
	if st, ok := rm.stages[stage]; ok {
		return st.Duration()
	}
	return 0
}

// RecordRowsRead records the number of rows loaded
func (rm *RunMetrics) RecordRowsRead(rows int) {
	rm.RowsRead = rows
}

// RecordRowsWritten records the number of rows serialized
func (rm *RunMetrics) RecordRowsWritten(rows int) {
	rm.RowsWritten = rows
}

// RecordCleaning folds a clean result into the metrics
func (rm *RunMetrics) RecordCleaning(result *cleaner.CleanResult) {
	if result == nil {
		return
	}
	rm.NullDates = result.NullDatesAfter
	rm.DuplicatesRemoved = result.DuplicatesRemoved
	rm.CellsTrimmed = result.CellsTrimmed
	rm.WeightsNulled = result.WeightsNulled
	rm.CleaningOps = result.Operations
}

// GenerateRunReport creates a detailed run report
func (rm *RunMetrics) GenerateRunReport() string {
	return fmt.Sprintf(`
Cleaning Run Report
===================
Total Duration:          %s

Stage Durations
---------------
Load:                    %s
Clean:                   %s
Write:                   %s

Data Summary
------------
Rows Read:               %d
Rows Written:            %d
Duplicates Removed:      %d
Null Dates Remaining:    %d
Cells Trimmed:           %d
Weights Nulled:          %d
Cleaning Operations:     %d
`,
		formatDuration(time.Since(rm.StartTime)),
		formatDuration(rm.StageDuration(StageLoad)),
		formatDuration(rm.StageDuration(StageClean)),
		formatDuration(rm.StageDuration(StageWrite)),
		rm.RowsRead,
		rm.RowsWritten,
		rm.DuplicatesRemoved,
		rm.NullDates,
		rm.CellsTrimmed,
		rm.WeightsNulled,
		rm.CleaningOps,
	)
}

// formatDuration renders a duration with millisecond precision
func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
