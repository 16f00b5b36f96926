package comparer

import (
	"strings"

	"github.com/JSHWJ/QA-helper/internal/domain"
	"github.com/JSHWJ/QA-helper/internal/normalize"
	"github.com/JSHWJ/QA-helper/internal/ports"
)

// MergeDictionary normalizes the parsed sheet and merges duplicate English
// keys into one entry each. Module/Korean/Russian values of duplicates are
// comma-joined in encounter order; empty values are skipped, repeated
// values are kept as-is (simple join). Rows with an empty normalized
// English cell are dropped.
func MergeDictionary(table ports.Table, cm ColumnMap) []domain.DictionaryEntry {
	type group struct {
		modules  []string
		koreans  []string
		russians []string
	}
	var order []string
	groups := map[string]*group{}

	cell := func(rec []string, idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return normalize.Normalize(rec[idx])
	}

	for _, rec := range table.Records {
		english := cell(rec, cm.English)
		if english == "" {
			continue
		}
		g, ok := groups[english]
		if !ok {
			g = &group{}
			groups[english] = g
			order = append(order, english)
		}
		if v := cell(rec, cm.Module); v != "" {
			g.modules = append(g.modules, v)
		}
		if v := cell(rec, cm.Korean); v != "" {
			g.koreans = append(g.koreans, v)
		}
		if v := cell(rec, cm.Russian); v != "" {
			g.russians = append(g.russians, v)
		}
	}

	entries := make([]domain.DictionaryEntry, 0, len(order))
	for _, english := range order {
		g := groups[english]
		entries = append(entries, domain.DictionaryEntry{
			Module:  strings.Join(g.modules, ", "),
			English: english,
			Korean:  strings.Join(g.koreans, ", "),
			Russian: strings.Join(g.russians, ", "),
		})
	}
	return entries
}

// LoadDictionary resolves columns and merges rows in one step.
func LoadDictionary(table ports.Table) ([]domain.DictionaryEntry, error) {
	cm, err := ResolveColumns(table.Headers)
	if err != nil {
		return nil, err
	}
	return MergeDictionary(table, cm), nil
}
