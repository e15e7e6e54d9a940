package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownRenderer writes the report as markdown with pipe tables
type MarkdownRenderer struct{}

// Render writes every section in fixed order
func (MarkdownRenderer) Render(w io.Writer, r *Report) error {
	var b strings.Builder

	b.WriteString("## Análisis BURET\n")

	mdHeading(&b, headingDescriptive)
	mdRow(&b, "", "count", "mean", "std", "min", "max")
	mdSeparator(&b, 6)
	for _, row := range r.Descriptive {
		mdRow(&b, row.Column.String(), strconv.Itoa(row.Count),
			fixed(row.Mean, 2, "NaN"), fixed(row.Std, 2, "NaN"), fixed(row.Min, 2, "NaN"), fixed(row.Max, 2, "NaN"))
	}

	for _, table := range r.Frequencies {
		mdHeading(&b, frequencyHeading(table.Label))
		mdRow(&b, "", "n", "%")
		mdSeparator(&b, 3)
		for _, row := range table.Rows {
			mdRow(&b, row.Category, strconv.Itoa(row.N), fixed(row.Percent, 1, "NaN"))
		}
	}

	mdHeading(&b, headingCorrelations)
	m := r.Correlations
	header := []string{""}
	for _, col := range m.Columns {
		header = append(header, col.String())
	}
	mdRow(&b, header...)
	mdSeparator(&b, len(header))
	for i, col := range m.Columns {
		cells := []string{col.String()}
		for j := range m.Columns {
			cells = append(cells, fixed(m.At(i, j), 3, "NaN"))
		}
		mdRow(&b, cells...)
	}

	mdHeading(&b, comparisonHeading(r.Comparison))
	for _, line := range comparisonLines(r.Comparison) {
		fmt.Fprintf(&b, "- %s\n", escapeMarkdown(line))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func mdHeading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n### %s\n\n", escapeMarkdown(title))
}

func mdRow(b *strings.Builder, cells ...string) {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = escapeMarkdown(cell)
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(escaped, " | "))
}

func mdSeparator(b *strings.Builder, n int) {
	cols := make([]string, n)
	cols[0] = "---"
	for i := 1; i < n; i++ {
		cols[i] = "---:"
	}
	fmt.Fprintf(b, "|%s|\n", strings.Join(cols, "|"))
}

var markdownEscaper = strings.NewReplacer(`|`, `\|`, `_`, `\_`, `*`, `\*`, `[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// HTMLRenderer converts the markdown report into a standalone HTML page
type HTMLRenderer struct{}

// Render writes a complete HTML document
func (HTMLRenderer) Render(w io.Writer, r *Report) error {
	var md bytes.Buffer
	if err := (MarkdownRenderer{}).Render(&md, r); err != nil {
		return err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Análisis BURET",
	})
	_, err := w.Write(markdown.ToHTML(md.Bytes(), p, renderer))
	return err
}
