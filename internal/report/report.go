package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"buret/domain/core"
	"buret/internal/analysis"
)

// Format selects how a Report is written
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported output format
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML}

// FormatList joins the supported format names for help and error text
func FormatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

// ParseFormat accepts a format name in any case; "md" is short for markdown
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported report format %q (want %s)", s, FormatList())
}

// Report gathers every section of one analysis run, in output order
type Report struct {
	Descriptive  []analysis.DescriptiveRow
	Frequencies  []analysis.FrequencyTable
	Correlations analysis.CorrelationMatrix
	Comparison   analysis.Comparison
}

// Renderer writes a report
type Renderer interface {
	Render(w io.Writer, r *Report) error
}

// NewRenderer returns the renderer for f
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case FormatText:
		return TextRenderer{}, nil
	case FormatMarkdown:
		return MarkdownRenderer{}, nil
	case FormatHTML:
		return HTMLRenderer{}, nil
	}
	return nil, fmt.Errorf("unsupported report format %q (want %s)", f, FormatList())
}

// Section headings
const (
	headingDescriptive  = "Estadísticos descriptivos (numéricos)"
	headingCorrelations = "Correlaciones de Pearson"
	ttestUnavailable    = "[Sin prueba t] Prueba de Welch no disponible; p-value omitido"
	insufficientNote    = "[datos insuficientes]"
)

func frequencyHeading(label string) string {
	return fmt.Sprintf("Distribución de '%s'", label)
}

func comparisonHeading(c analysis.Comparison) string {
	return fmt.Sprintf("Comparación High vs Low en '%s' (mediana = %s)", c.Split, pyFloat(c.Median))
}

// comparisonLines renders the body of the high/low section; shared by all formats
func comparisonLines(c analysis.Comparison) []string {
	lines := []string{
		groupLine("High", c.Outcome, c.High),
		groupLine("Low ", c.Outcome, c.Low),
	}

	if c.CohensDErr != nil {
		lines = append(lines, "Cohen d = nan "+insufficientNote)
	} else {
		lines = append(lines, fmt.Sprintf("Cohen d = %s", fixed(c.CohensD, 3, "nan")))
	}

	switch {
	case !c.TTestAvailable:
		lines = append(lines, ttestUnavailable)
	case c.TTestErr != nil:
		lines = append(lines, "Welch t = nan, p = nan "+insufficientNote)
	default:
		lines = append(lines, fmt.Sprintf("Welch t = %s, p = %s",
			fixed(c.TTest.T, 3, "nan"), fixed(c.TTest.PValue, 4, "nan")))
	}
	return lines
}

func groupLine(name string, outcome core.ColumnName, g analysis.GroupSummary) string {
	return fmt.Sprintf("%s (n=%d): %s = %s ± %s", name, g.Rows, outcome, fixed(g.Mean, 2, "nan"), fixed(g.Std, 2, "nan"))
}

// fixed formats x with the given decimals, using nan for NaN
func fixed(x float64, decimals int, nan string) string {
	if math.IsNaN(x) {
		return nan
	}
	if math.IsInf(x, 1) {
		return "inf"
	}
	if math.IsInf(x, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

// pyFloat prints a float the way Python's repr does for the values seen here:
// integral values keep one decimal (5.0), others use the shortest form (4.5)
func pyFloat(x float64) string {
	if math.IsNaN(x) {
		return "nan"
	}
	if x == math.Trunc(x) && !math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 1, 64)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
