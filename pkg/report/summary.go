// pkg/report/summary.go
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edudata/assessments-ingress/pkg/table"
)

// Summary holds the figures interpolated into the cleaning report.
// The section skeleton is fixed; the counts come from the actual run.
type Summary struct {
	InputFile         string
	OutputFile        string
	NullDatesBefore   int
	NullDatesAfter    int
	DuplicatesRemoved int
	RowsBefore        int
	RowsAfter         int
	CellsTrimmed      int
	WeightsNulled     int
	Dtypes            map[string]table.Dtype
}

// Render produces the markdown report written alongside the cleaned CSV
func (s Summary) Render() string {
	var b strings.Builder

	b.WriteString("# Data Cleaning Task 1 - Assessments Dataset\n\n")
	fmt.Fprintf(&b, "Data Cleaning Summary for %s:\n\n", s.InputFile)

	b.WriteString("1.  **Missing Values:**\n")
	b.WriteString("    - Identified missing values in the 'date' column (represented by empty strings).\n")
	b.WriteString("    - Replaced empty strings in the 'date' column with nulls and converted the column\n")
	b.WriteString("      to a numeric type, with non-numeric values becoming null.\n")
	fmt.Fprintf(&b, "    - Null dates: %d before handling, %d after. The remaining nulls correspond to\n",
		s.NullDatesBefore, s.NullDatesAfter)
	b.WriteString("      Exam records where no date was provided. No imputation was performed.\n\n")

	b.WriteString("2.  **Duplicate Rows:**\n")
	fmt.Fprintf(&b, "    - Removed %d exact-duplicate row(s), keeping the first occurrence of each.\n",
		s.DuplicatesRemoved)
	fmt.Fprintf(&b, "    - Shape went from %d to %d rows.\n\n", s.RowsBefore, s.RowsAfter)

	b.WriteString("3.  **Text Standardization:**\n")
	b.WriteString("    - Stripped leading and trailing whitespace from the 'code_module',\n")
	fmt.Fprintf(&b, "      'code_presentation' and 'assessment_type' columns (%d cell(s) changed).\n\n",
		s.CellsTrimmed)

	b.WriteString("4.  **Data Type Checking:**\n")
	fmt.Fprintf(&b, "    - Ensured the 'weight' column is numeric; %d unparsable value(s) became null.\n",
		s.WeightsNulled)
	b.WriteString("    - Final column dtypes:\n")
	for _, col := range sortedColumns(s.Dtypes) {
		fmt.Fprintf(&b, "      - %s: %s\n", col, s.Dtypes[col])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "The cleaned dataset is saved as '%s'.\n", s.OutputFile)

	return b.String()
}

func sortedColumns(dtypes map[string]table.Dtype) []string {
	columns := make([]string, 0, len(dtypes))
	for col := range dtypes {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
