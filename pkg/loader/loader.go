// pkg/loader/loader.go
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/edudata/assessments-ingress/pkg/table"
)

// Loader reads a CSV file into an in-memory table
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new Loader instance
func NewLoader(logger *zap.Logger) (*Loader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Loader{logger: logger}, nil
}

// Load reads the CSV at path into a table. The first record is the header;
// a missing or malformed file is a fatal error for the caller. After loading,
// column dtypes are inferred: a column whose non-empty values all parse as
// floats becomes float64, with empty cells mapped to null.
func (l *Loader) Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer f.Close()

	t, err := l.read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	rows, cols := t.Shape()
	l.logger.Info("Loaded dataset",
		zap.String("path", path),
		zap.Int("rows", rows),
		zap.Int("columns", cols))

	return t, nil
}

// read parses CSV records from r into a table and infers column dtypes
func (l *Loader) read(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("input file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t, err := table.New(header)
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	row := make([]table.Value, len(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		for i, field := range record {
			row[i] = table.String(field)
		}
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}

	inferDtypes(t)
	return t, nil
}

// inferDtypes promotes columns to float64 when every non-empty cell parses
// as a number. Cells in promoted columns are rewritten as floats, with empty
// strings becoming null. Mixed columns stay object with cells untouched.
func inferDtypes(t *table.Table) {
	for colIdx, col := range t.Columns() {
		numeric := false
		mixed := false

		for rowIdx := 0; rowIdx < t.NumRows(); rowIdx++ {
			s, ok := t.Value(rowIdx, colIdx).Str()
			if !ok || s == "" {
				continue
			}
			if _, parsed := table.ParseFloat(s); !parsed {
				mixed = true
				break
			}
			numeric = true
		}

		if mixed || !numeric {
			continue
		}

		for rowIdx := 0; rowIdx < t.NumRows(); rowIdx++ {
			s, ok := t.Value(rowIdx, colIdx).Str()
			if !ok {
				continue
			}
			if s == "" {
				t.SetValue(rowIdx, colIdx, table.Null())
				continue
			}
			f, _ := table.ParseFloat(s)
			t.SetValue(rowIdx, colIdx, table.Float(f))
		}
		_ = t.SetDtype(col, table.DtypeFloat64)
	}
}
