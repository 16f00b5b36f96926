// Package csvtable parses delimited dictionary files (.csv, .tsv, .txt).
package csvtable

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/JSHWJ/QA-helper/internal/ports"
)

type Parser struct {
	comma rune
	exts  []string
}

// New returns a comma-separated parser for .csv files.
func New() *Parser { return &Parser{comma: ',', exts: []string{"csv"}} }

// NewTab returns a tab-separated parser for .tsv and .txt files.
func NewTab() *Parser { return &Parser{comma: '\t', exts: []string{"tsv", "txt"}} }

func (p *Parser) Extensions() []string { return p.exts }

func (p *Parser) Parse(data []byte) (ports.Table, error) {
	data = stripBOM(data)
	// Dictionaries exported from Korean Excel installs are often CP949.
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
		if err != nil {
			return ports.Table{}, fmt.Errorf("decode cp949: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.Comma = p.comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return ports.Table{}, errors.New("empty table")
	}
	if err != nil {
		return ports.Table{}, fmt.Errorf("read header: %w", err)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ports.Table{}, fmt.Errorf("read row: %w", err)
		}
		// Pad short rows so column lookups stay in range.
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		records = append(records, rec)
	}
	return ports.Table{Headers: header, Records: records}, nil
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
