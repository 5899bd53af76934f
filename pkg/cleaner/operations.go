// pkg/cleaner/operations.go
package cleaner

import (
	"fmt"
	"strings"
	"time"

	"github.com/edudata/assessments-ingress/pkg/model"
	"github.com/edudata/assessments-ingress/pkg/table"
)

// coerceFloatValue coerces a single cell toward float64. Nulls and floats
// pass through untouched. Strings are parsed after whitespace trimming;
// empty or unparsable strings become null. Returns the cleaned value and
// an audit operation when the cell changed, nil otherwise.
func coerceFloatValue(
	v table.Value,
	runID, column, rowID, operation string,
) (table.Value, *model.CleaningOperation) {
	s, isString := v.Str()
	if !isString {
		// Already null or numeric
		return v, nil
	}

	if strings.TrimSpace(s) == "" {
		return table.Null(), &model.CleaningOperation{
			RunID:             runID,
			ColumnName:        column,
			OriginalValue:     s,
			NewValue:          "",
			RowIdentifier:     rowID,
			CleaningOperation: operation,
			CleaningReason:    "empty_string",
			CleanedAt:         now(),
		}
	}

	f, parsed := table.ParseFloat(s)
	if !parsed {
		return table.Null(), &model.CleaningOperation{
			RunID:             runID,
			ColumnName:        column,
			OriginalValue:     s,
			NewValue:          "",
			RowIdentifier:     rowID,
			CleaningOperation: operation,
			CleaningReason:    "unparsable_value",
			CleanedAt:         now(),
		}
	}

	cleaned := table.Float(f)
	return cleaned, &model.CleaningOperation{
		RunID:             runID,
		ColumnName:        column,
		OriginalValue:     s,
		NewValue:          cleaned.Render(),
		RowIdentifier:     rowID,
		CleaningOperation: operation,
		CleaningReason:    "converted_to_float",
		CleanedAt:         now(),
	}
}

// trimValue strips leading and trailing whitespace from a string cell.
// Non-string cells pass through untouched. Returns the cleaned value and
// an audit operation when the cell changed, nil otherwise.
func trimValue(
	v table.Value,
	runID, column, rowID string,
) (table.Value, *model.CleaningOperation) {
	s, isString := v.Str()
	if !isString {
		return v, nil
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == s {
		return v, nil
	}

	return table.String(trimmed), &model.CleaningOperation{
		RunID:             runID,
		ColumnName:        column,
		OriginalValue:     s,
		NewValue:          trimmed,
		RowIdentifier:     rowID,
		CleaningOperation: model.OpWhitespaceTrim,
		CleaningReason:    "surrounding_whitespace",
		CleanedAt:         now(),
	}
}

// rowIdentifier returns the id_assessment value for a row when the column
// exists and is non-null, otherwise a positional identifier.
func rowIdentifier(t *table.Table, rowIdx int) string {
	if colIdx, ok := t.ColumnIndex(model.ColIDAssessment); ok {
		if v := t.Value(rowIdx, colIdx); !v.IsNull() {
			return v.Render()
		}
	}
	return fmt.Sprintf("row:%d", rowIdx)
}

func now() time.Time {
	return time.Now()
}
