// pkg/model/cleaning.go
package model

import (
	"time"
)

// Cleaning operation types
const (
	OpNullNormalization = "null_normalization"
	OpNumericCoercion   = "numeric_coercion"
	OpWhitespaceTrim    = "whitespace_trim"
	OpDuplicateRemoval  = "duplicate_removal"
)

// CleaningOperation represents a single data cleaning operation
type CleaningOperation struct {
	RunID             string      // Pipeline run that produced the operation
	ColumnName        string      // Column that was cleaned
	OriginalValue     interface{} // Original value (may be nil)
	NewValue          string      // New value after cleaning ("" for null)
	RowIdentifier     string      // Identifies the row (id_assessment when present)
	CleaningOperation string      // Type of cleaning performed (e.g., "numeric_coercion")
	CleaningReason    string      // Reason for cleaning (e.g., "unparsable_value")
	CleanedAt         time.Time   // When the cleaning occurred
}
