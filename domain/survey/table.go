package survey

// Table is delimited input as read from disk: a header row and string cells.
// Every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the cell at row i, column j
func (t *Table) Cell(i, j int) string {
	return t.Rows[i][j]
}
