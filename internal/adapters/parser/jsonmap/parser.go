// Package jsonmap parses flat key→string localization files (ko.json,
// en.json, ru.json).
package jsonmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/JSHWJ/QA-helper/internal/domain"
	"github.com/JSHWJ/QA-helper/internal/normalize"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

// Parse expects a flat JSON object { key: value, ... } and returns entries
// in document order. Keys and values are normalized; scalar non-string
// values are coerced, nested values and $-metadata keys are skipped.
// A duplicate normalized key keeps its first position, last value.
func (p *Parser) Parse(data []byte) ([]domain.LocalizationEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(stripBOM(data)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("json root is not an object")
	}

	var entries []domain.LocalizationEntry
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		rawKey := keyTok.(string)

		var rawVal any
		if err := dec.Decode(&rawVal); err != nil {
			return nil, fmt.Errorf("invalid json value for %q: %w", rawKey, err)
		}

		if len(rawKey) > 0 && rawKey[0] == '$' {
			continue // metadata fields like $schema
		}
		var s string
		switch t := rawVal.(type) {
		case string:
			s = t
		case json.Number:
			s = t.String()
		case bool:
			s = strconv.FormatBool(t)
		default:
			continue
		}

		key := normalize.Normalize(rawKey)
		if key == "" {
			continue
		}
		value := normalize.Normalize(s)
		if i, seen := index[key]; seen {
			entries[i].Value = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, domain.LocalizationEntry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return entries, nil
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
