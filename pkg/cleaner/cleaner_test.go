package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edudata/assessments-ingress/pkg/model"
	"github.com/edudata/assessments-ingress/pkg/table"
)

const testRunID = "test-run"

func newCleaner(t *testing.T) *DataCleaner {
	t.Helper()
	c, err := NewDataCleaner(zap.NewNop(), testRunID)
	require.NoError(t, err)
	return c
}

// assessmentTable builds a table with the full dataset header, cells given
// as raw strings the way an uninferred load would produce them.
func assessmentTable(t *testing.T, records [][]string) *table.Table {
	t.Helper()
	tbl, err := table.New(model.AssessmentColumns())
	require.NoError(t, err)

	for _, record := range records {
		row := make([]table.Value, len(record))
		for i, field := range record {
			row[i] = table.String(field)
		}
		require.NoError(t, tbl.AppendRow(row))
	}
	return tbl
}

func TestNewDataCleaner(t *testing.T) {
	_, err := NewDataCleaner(nil, testRunID)
	assert.Error(t, err)

	_, err = NewDataCleaner(zap.NewNop(), "")
	assert.Error(t, err)

	c, err := NewDataCleaner(zap.NewNop(), testRunID)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestCleanTrimsAndCoerces(t *testing.T) {
	tbl := assessmentTable(t, [][]string{
		{"AAA", "2013J", "1752", "TMA", " 19 ", "10"},
	})

	c := newCleaner(t)
	result, err := c.Clean(tbl)
	require.NoError(t, err)

	assert.Equal(t, 1, result.RowsAfter)

	dateIdx, _ := tbl.ColumnIndex(model.ColDate)
	weightIdx, _ := tbl.ColumnIndex(model.ColWeight)
	assert.True(t, table.Float(19).Equal(tbl.Value(0, dateIdx)))
	assert.True(t, table.Float(10).Equal(tbl.Value(0, weightIdx)))

	dt, _ := tbl.Dtype(model.ColDate)
	assert.Equal(t, table.DtypeFloat64, dt)
	dt, _ = tbl.Dtype(model.ColWeight)
	assert.Equal(t, table.DtypeFloat64, dt)
}

func TestCleanRemovesExactDuplicates(t *testing.T) {
	tbl := assessmentTable(t, [][]string{
		{"AAA", "2013J", "1753", "Exam", "", ""},
		{"AAA", "2013J", "1753", "Exam", "", ""},
	})

	c := newCleaner(t)
	result, err := c.Clean(tbl)
	require.NoError(t, err)

	assert.Equal(t, 1, result.DuplicatesRemoved)
	assert.Equal(t, 1, tbl.NumRows())

	dateIdx, _ := tbl.ColumnIndex(model.ColDate)
	assert.True(t, tbl.Value(0, dateIdx).IsNull())
}

func TestCleanNullsUnparsableWeight(t *testing.T) {
	tbl := assessmentTable(t, [][]string{
		{"AAA", "2013J", "1752", "TMA", "19", "abc"},
	})

	c := newCleaner(t)
	result, err := c.Clean(tbl)
	require.NoError(t, err)

	assert.Equal(t, 1, result.WeightsNulled)
	weightIdx, _ := tbl.ColumnIndex(model.ColWeight)
	assert.True(t, tbl.Value(0, weightIdx).IsNull())
}

func TestCleanMissingDateColumnAborts(t *testing.T) {
	tbl, err := table.New([]string{
		model.ColCodeModule, model.ColCodePresentation, model.ColIDAssessment,
		model.ColAssessmentType, model.ColWeight,
	})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]table.Value{
		table.String("AAA"), table.String("2013J"), table.String("1752"),
		table.String("TMA"), table.String("10"),
	}))

	c := newCleaner(t)
	_, err = c.Clean(tbl)
	assert.Error(t, err)
}

func TestCleanPreservesRowOrder(t *testing.T) {
	tbl := assessmentTable(t, [][]string{
		{"AAA", "2013J", "1752", "TMA", "19", "10"},
		{"BBB", "2013J", "1760", "CMA", "33", "5"},
		{"AAA", "2013J", "1752", "TMA", "19", "10"}, // duplicate of row 0
		{"CCC", "2014B", "1801", "Exam", "", "100"},
	})

	c := newCleaner(t)
	_, err := c.Clean(tbl)
	require.NoError(t, err)

	moduleIdx, _ := tbl.ColumnIndex(model.ColCodeModule)
	require.Equal(t, 3, tbl.NumRows())
	assert.True(t, table.String("AAA").Equal(tbl.Value(0, moduleIdx)))
	assert.True(t, table.String("BBB").Equal(tbl.Value(1, moduleIdx)))
	assert.True(t, table.String("CCC").Equal(tbl.Value(2, moduleIdx)))
}

func TestCleanIsIdempotent(t *testing.T) {
	tbl := assessmentTable(t, [][]string{
		{" AAA ", "2013J", "1752", "TMA ", " 19 ", "10"},
		{" AAA ", "2013J", "1752", "TMA ", " 19 ", "10"},
		{"BBB", "2014B", "1801", "Exam", "", "abc"},
	})

	c := newCleaner(t)
	first, err := c.Clean(tbl)
	require.NoError(t, err)
	require.Equal(t, 2, first.RowsAfter)

	c2 := newCleaner(t)
	second, err := c2.Clean(tbl)
	require.NoError(t, err)

	assert.Equal(t, first.RowsAfter, second.RowsAfter)
	assert.Equal(t, 0, second.DuplicatesRemoved)
	assert.Equal(t, 0, second.CellsTrimmed)
	assert.Equal(t, 0, second.WeightsNulled)
	assert.Equal(t, 0, second.Operations)
}

func TestStandardizeTextSkipsMissingColumns(t *testing.T) {
	tbl, err := table.New([]string{model.ColCodeModule})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]table.Value{table.String("  AAA")}))

	c := newCleaner(t)
	trimmed := c.StandardizeText(tbl, model.TextColumns())

	assert.Equal(t, 1, trimmed)
	assert.True(t, table.String("AAA").Equal(tbl.Value(0, 0)))
}

func TestStandardizeTextLeavesNonStringsUntouched(t *testing.T) {
	tbl, err := table.New([]string{model.ColCodeModule})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]table.Value{table.Float(7)}))
	require.NoError(t, tbl.AppendRow([]table.Value{table.Null()}))

	c := newCleaner(t)
	trimmed := c.StandardizeText(tbl, []string{model.ColCodeModule})

	assert.Equal(t, 0, trimmed)
	assert.True(t, table.Float(7).Equal(tbl.Value(0, 0)))
	assert.True(t, tbl.Value(1, 0).IsNull())
}

func TestNormalizeMissingRequiresColumn(t *testing.T) {
	tbl, err := table.New([]string{"other"})
	require.NoError(t, err)

	c := newCleaner(t)
	_, err = c.NormalizeMissing(tbl, model.ColDate)
	assert.Error(t, err)
}

func TestCoerceNumericRequiresColumn(t *testing.T) {
	tbl, err := table.New([]string{"other"})
	require.NoError(t, err)

	c := newCleaner(t)
	_, err = c.CoerceNumeric(tbl, model.ColWeight)
	assert.Error(t, err)
}

func TestOperationsAuditTrail(t *testing.T) {
	tbl := assessmentTable(t, [][]string{
		{"AAA", "2013J", "1752", "TMA", "", " 10 "},
	})

	c := newCleaner(t)
	_, err := c.Clean(tbl)
	require.NoError(t, err)

	ops := c.Operations()
	require.NotEmpty(t, ops)

	byType := make(map[string]int)
	for _, op := range ops {
		assert.Equal(t, testRunID, op.RunID)
		assert.False(t, op.CleanedAt.IsZero())
		byType[op.CleaningOperation]++
	}

	assert.Equal(t, 1, byType[model.OpNullNormalization], "empty date nulled")
	assert.Equal(t, 1, byType[model.OpNumericCoercion], "weight text coerced")

	// The nulled date is attributed to the row's assessment id
	found := false
	for _, op := range ops {
		if op.CleaningOperation == model.OpNullNormalization {
			assert.Equal(t, "1752", op.RowIdentifier)
			found = true
		}
	}
	assert.True(t, found)
}
