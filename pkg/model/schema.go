// pkg/model/schema.go
package model

import "strings"

// Column names of the assessments dataset, in their fixed file order.
const (
	ColCodeModule       = "code_module"
	ColCodePresentation = "code_presentation"
	ColIDAssessment     = "id_assessment"
	ColAssessmentType   = "assessment_type"
	ColDate             = "date"
	ColWeight           = "weight"
)

// AssessmentColumns returns the dataset columns in canonical order
func AssessmentColumns() []string {
	return []string{
		ColCodeModule,
		ColCodePresentation,
		ColIDAssessment,
		ColAssessmentType,
		ColDate,
		ColWeight,
	}
}

// TextColumns returns the categorical columns subject to whitespace
// standardization. Each is checked for existence before processing.
func TextColumns() []string {
	return []string{ColCodeModule, ColCodePresentation, ColAssessmentType}
}

// CanonicalHeaders maps each expected column name to its canonical form.
// The headers in the source file are already canonical; the mapping keeps
// the rename step explicit should upstream exports ever drift.
func CanonicalHeaders() map[string]string {
	headers := make(map[string]string, len(AssessmentColumns()))
	for _, col := range AssessmentColumns() {
		headers[col] = col
	}
	return headers
}

// NormalizeColumnName lowercases a column name for case-insensitive lookups
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
