// Package excel renders export tables as downloadable spreadsheets.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"

	"github.com/termpro2000/fdapp/internal/application/export"
)

var _ export.Renderer = (*XLSXRenderer)(nil)

const (
	minColumnWidth = 15
	maxColumnWidth = 50
)

// XLSXRenderer renders a TableSet as an Excel workbook, one sheet per table.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Extension() string { return "xlsx" }

func (r *XLSXRenderer) Render(ts export.TableSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, table := range ts.Tables {
		sheet := table.Name
		if i == 0 {
			// excelize starts with one default sheet; rename it.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}
		if err := writeTable(f, sheet, table, headerStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, table export.Table, headerStyle int) error {
	header := make([]any, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	endCol, err := excelize.ColumnNumberToName(len(table.Headers))
	if err != nil {
		return fmt.Errorf("resolve end column: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", endCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}

	for i, row := range table.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	for c := range table.Headers {
		w := columnWidth(table, c)
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return fmt.Errorf("resolve column: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}

func columnWidth(table export.Table, col int) float64 {
	max := displayWidth(table.Headers[col])
	for _, row := range table.Rows {
		if col < len(row) {
			if w := displayWidth(row[col]); w > max {
				max = w
			}
		}
	}
	w := float64(max + 2)
	if w < minColumnWidth {
		return minColumnWidth
	}
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}

// displayWidth counts east-asian wide runes as two cells so Korean headers
// do not truncate.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
