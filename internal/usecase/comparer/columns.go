package comparer

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"

	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"

	"github.com/JSHWJ/QA-helper/internal/normalize"
)

// Alias table for dictionary column headers. Includes the typo variants
// that show up in real glossary sheets ("Enlish", "Englsh").
var columnAliases = map[string][]string{
	"module":  {"Main Module", "MainModule", "main module", "Module", "모듈", "Main"},
	"english": {"English", "Enlish", "Englsh", "EN", "en", "영어", "영문"},
	"korean":  {"Korean", "KO", "ko", "한국어", "국문", "KOR"},
	"russian": {"Russian", "RU", "ru", "러시아어", "러문", "RUS"},
}

// fuzzyThreshold is the minimum similarity for the last-resort header match.
const fuzzyThreshold = 0.78

// ColumnMap holds resolved dictionary column indexes. Module is optional
// and -1 when the sheet has no module column.
type ColumnMap struct {
	Module  int
	English int
	Korean  int
	Russian int
}

// ResolveColumns maps sheet headers to canonical columns via the alias
// table. Missing required columns (english/korean/russian) fail with a
// descriptive error rather than producing a partial table.
func ResolveColumns(headers []string) (ColumnMap, error) {
	cm := ColumnMap{Module: -1, English: -1, Korean: -1, Russian: -1}
	cm.Module = guessColumn(headers, columnAliases["module"])
	cm.English = guessColumn(headers, columnAliases["english"])
	cm.Korean = guessColumn(headers, columnAliases["korean"])
	cm.Russian = guessColumn(headers, columnAliases["russian"])

	var missing []string
	if cm.English < 0 {
		missing = append(missing, "English")
	}
	if cm.Korean < 0 {
		missing = append(missing, "Korean")
	}
	if cm.Russian < 0 {
		missing = append(missing, "Russian")
	}
	if len(missing) > 0 {
		return ColumnMap{}, apperrors.BadRequest(
			"DICTIONARY_COLUMNS_MISSING",
			fmt.Sprintf("딕셔너리 컬럼 자동 매핑 실패: %s", strings.Join(missing, ", ")),
		)
	}
	return cm, nil
}

// guessColumn resolves one canonical column against the headers: exact
// match, lowercased match, normalized-header match, then fuzzy similarity.
func guessColumn(headers []string, candidates []string) int {
	lower := map[string]int{}
	normed := map[string]int{}
	for i, h := range headers {
		l := strings.ToLower(strings.TrimSpace(h))
		if _, ok := lower[l]; !ok {
			lower[l] = i
		}
		n := normalize.Header(h)
		if _, ok := normed[n]; !ok {
			normed[n] = i
		}
	}

	for _, c := range candidates {
		for i, h := range headers {
			if h == c {
				return i
			}
		}
	}
	for _, c := range candidates {
		if i, ok := lower[strings.ToLower(strings.TrimSpace(c))]; ok {
			return i
		}
	}
	for _, c := range candidates {
		if i, ok := normed[normalize.Header(c)]; ok {
			return i
		}
	}

	bestScore, bestIdx := 0.0, -1
	for _, c := range candidates {
		nc := normalize.Header(c)
		if nc == "" {
			continue
		}
		for i, h := range headers {
			nh := normalize.Header(h)
			if nh == "" {
				continue
			}
			score := levenshtein.Similarity(nc, nh, nil)
			if score > bestScore {
				bestScore, bestIdx = score, i
			}
		}
	}
	if bestScore >= fuzzyThreshold {
		return bestIdx
	}
	return -1
}
