package csv

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/JSHWJ/QA-helper/internal/domain"
)

// Exporter writes the review table as UTF-8 CSV with a BOM so Excel opens
// Korean text correctly.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "csv" }

func (e *Exporter) Export(rows []domain.ComparisonRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write(domain.Columns); err != nil {
		return nil, err
	}
	record := make([]string, len(domain.Columns))
	for i := range rows {
		r := &rows[i]
		for j, col := range domain.Columns {
			if col == domain.ColSeq {
				record[j] = strconv.Itoa(r.Seq)
				continue
			}
			record[j] = r.Cell(col)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
