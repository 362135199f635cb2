package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/termpro2000/fdapp/internal/application/export"
)

var _ export.Renderer = (*CSVRenderer)(nil)

// utf8BOM makes Excel open the file as UTF-8; without it Korean text shows
// as mojibake.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVRenderer renders the first table of a TableSet as UTF-8 CSV with BOM.
// CSV has no sheet concept, so additional tables are dropped.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

func (r *CSVRenderer) Extension() string { return "csv" }

func (r *CSVRenderer) Render(ts export.TableSet) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if len(ts.Tables) > 0 {
		t := ts.Tables[0]
		if err := w.Write(t.Headers); err != nil {
			return nil, fmt.Errorf("write csv header: %w", err)
		}
		if err := w.WriteAll(t.Rows); err != nil {
			return nil, fmt.Errorf("write csv rows: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
