package survey

import (
	"fmt"
	"strings"

	"buret/domain/core"
)

// SchemaError names every required column absent from a header row.
type SchemaError struct {
	Missing []core.ColumnName
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = c.String()
	}
	return fmt.Sprintf("missing required columns: %s", strings.Join(names, ", "))
}

func (e *SchemaError) Unwrap() error {
	return core.ErrMissingColumn
}

// ValidateSchema checks that every required column appears in headers (exact,
// case-sensitive match) and returns the index of each one.
func ValidateSchema(headers []string) (map[core.ColumnName]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	positions := make(map[core.ColumnName]int, len(RequiredColumns))
	var missing []core.ColumnName
	for _, col := range RequiredColumns {
		i, ok := index[col.String()]
		if !ok {
			missing = append(missing, col)
			continue
		}
		positions[col] = i
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return positions, nil
}
