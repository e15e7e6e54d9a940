package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"buret/domain/survey"
	"buret/internal"
	"buret/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading CSV and Excel files
type DataReader struct {
	sheet  string
	logger *internal.Logger
}

// NewDataReader creates a reader. sheet selects the worksheet for .xlsx input; empty means the first one.
func NewDataReader(sheet string, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.Discard
	}
	return &DataReader{sheet: sheet, logger: logger}
}

// fileType picks the parser from the extension; anything that is not .xlsx is read as CSV
func fileType(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return "xlsx"
	}
	return "csv"
}

// Read loads path into a Table
func (r *DataReader) Read(ctx context.Context, path string) (*survey.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.FileError(path, err)
	}
	if info.IsDir() {
		return nil, errors.FileError(path, fmt.Errorf("is a directory"))
	}

	kind := fileType(path)
	r.logger.Debug("[DataReader] Starting to read %s file: %s", kind, path)

	var rows [][]string
	start := time.Now()
	switch kind {
	case "xlsx":
		rows, err = r.readExcelRows(path)
	default:
		rows, err = r.readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)", path, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	table, err := processRows(rows)
	if err != nil {
		return nil, errors.ParseError(path, err)
	}
	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)", strings.ToUpper(kind), len(table.Headers), len(table.Rows))
	return table, nil
}

// readCSVRows reads comma-separated rows; blank lines are skipped by encoding/csv
func (r *DataReader) readCSVRows(path string) ([][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileError(path, err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.ParseError(path, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// readExcelRows reads the configured sheet, or the first sheet of the workbook
func (r *DataReader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.ParseError(path, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.ParseError(path, fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.ParseError(path, fmt.Errorf("failed to read sheet %q: %w", sheet, err))
	}

	// excelize returns empty slices for blank rows; drop them like blank CSV lines
	kept := rows[:0]
	for _, row := range rows {
		if len(row) > 0 {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

// processRows splits the header from data rows and normalises row width.
// Short rows are padded with empty cells; rows wider than the header are malformed.
func processRows(rows [][]string) (*survey.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([][]string, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) > len(headers) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", i+1, len(headers), len(row))
		}
		cells := make([]string, len(headers))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		data = append(data, cells)
	}

	return &survey.Table{Headers: headers, Rows: data}, nil
}
