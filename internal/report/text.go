package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"buret/internal/analysis"
)

// TextRenderer writes aligned plain-text tables, one section per block
type TextRenderer struct{}

// Render writes every section in fixed order
func (TextRenderer) Render(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	writeHeading(bw, headingDescriptive)
	tw := newTable(bw)
	fmt.Fprintln(tw, "\tcount\tmean\tstd\tmin\tmax\t")
	for _, row := range r.Descriptive {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t\n", row.Column, row.Count,
			fixed(row.Mean, 2, "NaN"), fixed(row.Std, 2, "NaN"), fixed(row.Min, 2, "NaN"), fixed(row.Max, 2, "NaN"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, table := range r.Frequencies {
		if err := writeFrequencyText(bw, table); err != nil {
			return err
		}
	}

	writeHeading(bw, headingCorrelations)
	tw = newTable(bw)
	m := r.Correlations
	for _, col := range m.Columns {
		fmt.Fprintf(tw, "\t%s", col)
	}
	fmt.Fprintln(tw, "\t")
	for i, col := range m.Columns {
		fmt.Fprint(tw, col)
		for j := range m.Columns {
			fmt.Fprintf(tw, "\t%s", fixed(m.At(i, j), 3, "NaN"))
		}
		fmt.Fprintln(tw, "\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	writeHeading(bw, comparisonHeading(r.Comparison))
	for _, line := range comparisonLines(r.Comparison) {
		fmt.Fprintln(bw, line)
	}

	return bw.Flush()
}

func writeFrequencyText(w io.Writer, table analysis.FrequencyTable) error {
	writeHeading(w, frequencyHeading(table.Label))
	tw := newTable(w)
	fmt.Fprintln(tw, "\tn\t%\t")
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row.Category, strconv.Itoa(row.N), fixed(row.Percent, 1, "NaN"))
	}
	return tw.Flush()
}

func writeHeading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n-- %s --\n", title)
}

// newTable right-aligns every cell
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}
