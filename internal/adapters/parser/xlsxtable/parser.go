// Package xlsxtable parses .xlsx dictionary files using the first sheet.
package xlsxtable

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JSHWJ/QA-helper/internal/ports"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Extensions() []string { return []string{"xlsx"} }

func (p *Parser) Parse(data []byte) (ports.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return ports.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ports.Table{}, errors.New("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ports.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return ports.Table{}, errors.New("empty table")
	}

	header := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		records = append(records, rec)
	}
	return ports.Table{Headers: header, Records: records}, nil
}
