// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/edudata/assessments-ingress/pkg/model"
	"github.com/edudata/assessments-ingress/pkg/table"
)

// DataCleaner applies the cleaning stages to a table in strict order,
// recording an audit operation for every cell it mutates.
type DataCleaner struct {
	logger *zap.Logger
	runID  string
	ops    []model.CleaningOperation
}

// CleanResult summarizes a full cleaning pass
type CleanResult struct {
	RowsBefore        int
	RowsAfter         int
	NullDatesBefore   int
	NullDatesAfter    int
	DuplicatesRemoved int
	CellsTrimmed      int
	WeightsNulled     int
	Operations        int
}

// NewDataCleaner creates a new DataCleaner instance
func NewDataCleaner(logger *zap.Logger, runID string) (*DataCleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if runID == "" {
		return nil, errors.New("run ID cannot be empty")
	}

	return &DataCleaner{
		logger: logger,
		runID:  runID,
	}, nil
}

// Clean runs all cleaning stages in order, each fully materializing before
// the next begins:
//  1. missing-value normalization on the date column (required)
//  2. exact-duplicate row removal, first occurrence kept
//  3. whitespace trimming on the categorical text columns (skipped if absent)
//  4. numeric coercion on the weight column (required)
//
// Parse failures never surface as errors; they resolve to null. A missing
// date or weight column is an error and aborts the run.
func (c *DataCleaner) Clean(t *table.Table) (*CleanResult, error) {
	if t == nil {
		return nil, errors.New("table cannot be nil")
	}

	result := &CleanResult{RowsBefore: t.NumRows()}

	nullsBefore, _ := t.NullCount(model.ColDate)
	result.NullDatesBefore = nullsBefore
	c.logger.Info("Null counts before handling", zap.Any("counts", t.NullCounts()))

	if _, err := c.NormalizeMissing(t, model.ColDate); err != nil {
		return nil, fmt.Errorf("missing-value normalization failed: %w", err)
	}
	nullsAfter, _ := t.NullCount(model.ColDate)
	result.NullDatesAfter = nullsAfter
	c.logger.Info("Null counts after handling", zap.Any("counts", t.NullCounts()))

	duplicates := t.DuplicateCount()
	c.logger.Info("Duplicate rows before removal", zap.Int("count", duplicates))
	result.DuplicatesRemoved = c.RemoveDuplicates(t)
	rows, cols := t.Shape()
	c.logger.Info("Shape after removing duplicates",
		zap.Int("rows", rows),
		zap.Int("columns", cols))

	result.CellsTrimmed = c.StandardizeText(t, model.TextColumns())

	nulled, err := c.CoerceNumeric(t, model.ColWeight)
	if err != nil {
		return nil, fmt.Errorf("weight coercion failed: %w", err)
	}
	result.WeightsNulled = nulled
	c.logger.Info("Dtypes after conversion", zap.Any("dtypes", t.Dtypes()))

	result.RowsAfter = t.NumRows()
	result.Operations = len(c.ops)

	c.logger.Info("Cleaning completed",
		zap.String("runID", c.runID),
		zap.Int("rowsBefore", result.RowsBefore),
		zap.Int("rowsAfter", result.RowsAfter),
		zap.Int("operations", result.Operations))

	return result, nil
}

// NormalizeMissing treats empty strings in the column as null, then coerces
// the entire column to float64, converting anything unparsable to null.
// Returns the number of nulls introduced. The column must exist.
func (c *DataCleaner) NormalizeMissing(t *table.Table, column string) (int, error) {
	colIdx, ok := t.ColumnIndex(column)
	if !ok {
		return 0, fmt.Errorf("required column not found: %s", column)
	}

	introduced := 0
	for rowIdx := 0; rowIdx < t.NumRows(); rowIdx++ {
		v := t.Value(rowIdx, colIdx)
		cleaned, op := coerceFloatValue(v, c.runID, column, rowIdentifier(t, rowIdx), model.OpNullNormalization)
		if op == nil {
			continue
		}

		t.SetValue(rowIdx, colIdx, cleaned)
		c.ops = append(c.ops, *op)
		if cleaned.IsNull() {
			introduced++
		}
	}

	if err := t.SetDtype(column, table.DtypeFloat64); err != nil {
		return introduced, err
	}

	c.logger.Info("Normalized missing values",
		zap.String("column", column),
		zap.Int("nullsIntroduced", introduced))

	return introduced, nil
}

// RemoveDuplicates drops all but the first occurrence of each distinct row,
// preserving the original relative order of survivors. Returns the number
// of rows removed.
func (c *DataCleaner) RemoveDuplicates(t *table.Table) int {
	removed := t.DropDuplicates()

	if removed > 0 {
		c.ops = append(c.ops, model.CleaningOperation{
			RunID:             c.runID,
			ColumnName:        "*",
			NewValue:          fmt.Sprintf("%d rows removed", removed),
			RowIdentifier:     "*",
			CleaningOperation: model.OpDuplicateRemoval,
			CleaningReason:    "exact_duplicate_rows",
			CleanedAt:         now(),
		})
	}

	c.logger.Info("Removed duplicate rows", zap.Int("count", removed))
	return removed
}

// StandardizeText strips leading and trailing whitespace from every string
// cell in the given columns. Columns absent from the table are silently
// skipped; non-string cells are left untouched. Returns the number of cells
// changed.
func (c *DataCleaner) StandardizeText(t *table.Table, columns []string) int {
	trimmed := 0

	for _, column := range columns {
		colIdx, ok := t.ColumnIndex(column)
		if !ok {
			c.logger.Warn("Skipping text standardization for missing column",
				zap.String("column", column))
			continue
		}

		for rowIdx := 0; rowIdx < t.NumRows(); rowIdx++ {
			v := t.Value(rowIdx, colIdx)
			cleaned, op := trimValue(v, c.runID, column, rowIdentifier(t, rowIdx))
			if op == nil {
				continue
			}

			t.SetValue(rowIdx, colIdx, cleaned)
			c.ops = append(c.ops, *op)
			trimmed++
		}

		c.logger.Info("Standardized column", zap.String("column", column))
	}

	return trimmed
}

// CoerceNumeric coerces the column to float64, converting unparsable values
// to null. Returns the number of values nulled. The column must exist.
func (c *DataCleaner) CoerceNumeric(t *table.Table, column string) (int, error) {
	colIdx, ok := t.ColumnIndex(column)
	if !ok {
		return 0, fmt.Errorf("required column not found: %s", column)
	}

	nulled := 0
	for rowIdx := 0; rowIdx < t.NumRows(); rowIdx++ {
		v := t.Value(rowIdx, colIdx)
		cleaned, op := coerceFloatValue(v, c.runID, column, rowIdentifier(t, rowIdx), model.OpNumericCoercion)
		if op == nil {
			continue
		}

		t.SetValue(rowIdx, colIdx, cleaned)
		c.ops = append(c.ops, *op)
		if cleaned.IsNull() {
			nulled++
		}
	}

	if err := t.SetDtype(column, table.DtypeFloat64); err != nil {
		return nulled, err
	}

	c.logger.Info("Coerced column to numeric",
		zap.String("column", column),
		zap.Int("valuesNulled", nulled))

	return nulled, nil
}

// Operations returns the audit trail of cleaning operations performed so far
func (c *DataCleaner) Operations() []model.CleaningOperation {
	return append([]model.CleaningOperation(nil), c.ops...)
}
