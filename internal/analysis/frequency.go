package analysis

import (
	"fmt"
	"sort"
)

// FrequencyRow is one category of a frequency table
type FrequencyRow struct {
	Category string
	N        int
	Percent  float64 // round(n/total, 3) * 100
}

// FrequencyTable counts the categories of one column, missing bucket included
type FrequencyTable struct {
	Label string
	Total int
	Rows  []FrequencyRow
}

// TotalPercent sums the relative frequencies of every row
func (t FrequencyTable) TotalPercent() float64 {
	sum := 0.0
	for _, r := range t.Rows {
		sum += r.Percent
	}
	return sum
}

// Category is a countable value with a display name. survey.NullInt and
// survey.Level both qualify; their missing values compare equal so they share a bucket.
type Category interface {
	comparable
	fmt.Stringer
}

// Frequencies counts values by category. Rows are ordered by descending count,
// ties keep the order in which categories first appear.
func Frequencies[T Category](label string, values []T) FrequencyTable {
	counts := make(map[T]int)
	var order []T
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	table := FrequencyTable{Label: label, Total: len(values), Rows: make([]FrequencyRow, 0, len(order))}
	for _, v := range order {
		n := counts[v]
		table.Rows = append(table.Rows, FrequencyRow{
			Category: v.String(),
			N:        n,
			Percent:  Round(float64(n)/float64(len(values)), 3) * 100,
		})
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		return table.Rows[i].N > table.Rows[j].N
	})
	return table
}
