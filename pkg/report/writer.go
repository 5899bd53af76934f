// pkg/report/writer.go
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/edudata/assessments-ingress/pkg/table"
)

// Writer serializes the cleaned table and renders the summary report
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a new Writer instance
func NewWriter(logger *zap.Logger) (*Writer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Writer{logger: logger}, nil
}

// WriteCSV writes the table to path as CSV: header row included, column
// order unchanged, no index column, nulls as empty fields. Any existing
// file is overwritten.
func (w *Writer) WriteCSV(t *table.Table, path string) error {
	if t == nil {
		return errors.New("table cannot be nil")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Columns()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, t.NumColumns())
	for rowIdx := 0; rowIdx < t.NumRows(); rowIdx++ {
		for colIdx := range record {
			record[colIdx] = t.Value(rowIdx, colIdx).Render()
		}
		if err := cw.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row %d: %w", rowIdx, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	rows, cols := t.Shape()
	w.logger.Info("Wrote cleaned dataset",
		zap.String("path", path),
		zap.Int("rows", rows),
		zap.Int("columns", cols))

	return nil
}

// WriteSummary renders the cleaning summary to path, overwriting any
// existing content.
func (w *Writer) WriteSummary(path string, s Summary) error {
	if err := os.WriteFile(path, []byte(s.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}

	w.logger.Info("Wrote cleaning summary", zap.String("path", path))
	return nil
}
