// Package comparer builds and recomputes the dictionary/JSON comparison
// table.
package comparer

import (
	"strings"

	"github.com/JSHWJ/QA-helper/internal/domain"
	"github.com/JSHWJ/QA-helper/internal/normalize"
)

// lookup resolves json values by several key spellings so that near-miss
// keys (case, width, stray whitespace) still join.
type lookup struct {
	values map[string]string
}

func buildLookup(entries []domain.LocalizationEntry) lookup {
	l := lookup{values: make(map[string]string, len(entries)*2)}
	put := func(k, v string) {
		if k == "" {
			return
		}
		if _, ok := l.values[k]; !ok {
			l.values[k] = v
		}
	}
	for _, e := range entries {
		put(e.Key, e.Value)
		put(strings.ToLower(e.Key), e.Value)
		put(normalize.CanonicalKey(e.Key), e.Value)
	}
	return l
}

func (l lookup) get(key string) (string, bool) {
	for _, k := range []string{key, strings.ToLower(key), normalize.CanonicalKey(key)} {
		if v, ok := l.values[k]; ok {
			return v, true
		}
	}
	return "", false
}

// EvaluateMatch compares a merged dictionary value against a json value.
// An empty json value means the file (or the key) is absent: 파일없음.
// The joined dictionary value is a candidate list; any candidate matching
// the json value counts as Y.
func EvaluateMatch(dictJoined, jsonValue string) domain.MatchStatus {
	right := normalize.Normalize(jsonValue)
	if right == "" {
		return domain.MatchMissing
	}
	left := normalize.Normalize(dictJoined)
	if left == "" {
		return domain.MatchNo
	}
	for _, candidate := range strings.Split(left, ",") {
		if normalize.Normalize(candidate) == right {
			return domain.MatchYes
		}
	}
	return domain.MatchNo
}

// EvaluateOverall is Y only when all three language columns are Y.
// 파일없음 counts as non-Y, so a missing file can never make a row overall-clean.
func EvaluateOverall(ko, en, ru domain.MatchStatus) domain.MatchStatus {
	if ko == domain.MatchYes && en == domain.MatchYes && ru == domain.MatchYes {
		return domain.MatchYes
	}
	return domain.MatchNo
}

// BuildTable joins the merged dictionary with the localization files into
// the ordered comparison table. Ordering is first-seen: dictionary keys,
// then ko.json, ru.json and (optionally) en.json keys. Deterministic for
// identical inputs.
func BuildTable(src domain.CompareSources) []domain.ComparisonRow {
	koLookup := buildLookup(src.Ko)
	enLookup := buildLookup(src.En)
	ruLookup := buildLookup(src.Ru)

	dictByKey := make(map[string]domain.DictionaryEntry, len(src.Entries))
	var orderedKeys []string
	seen := map[string]bool{}
	appendKey := func(raw string) {
		k := normalize.Normalize(raw)
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		orderedKeys = append(orderedKeys, k)
	}

	for _, e := range src.Entries {
		k := normalize.Normalize(e.English)
		if _, dup := dictByKey[k]; !dup {
			dictByKey[k] = e
		}
		appendKey(e.English)
	}
	for _, e := range src.Ko {
		appendKey(e.Key)
	}
	for _, e := range src.Ru {
		appendKey(e.Key)
	}
	if src.IncludeEnKeys {
		for _, e := range src.En {
			appendKey(e.Key)
		}
	}

	rows := make([]domain.ComparisonRow, 0, len(orderedKeys))
	for i, key := range orderedKeys {
		entry, inDict := dictByKey[key]

		jsonKo, foundKo := "", false
		jsonEn, foundEn := "", false
		jsonRu, foundRu := "", false
		if src.KoLoaded {
			jsonKo, foundKo = koLookup.get(key)
		}
		if src.EnLoaded {
			jsonEn, foundEn = enLookup.get(key)
		}
		if src.RuLoaded {
			jsonRu, foundRu = ruLookup.get(key)
		}

		source := domain.SourceBoth
		inJSON := foundKo || foundEn || foundRu
		switch {
		case inDict && !inJSON:
			source = domain.SourceDictOnly
		case !inDict && inJSON:
			source = domain.SourceJSONOnly
		}

		row := domain.ComparisonRow{
			Seq:         i + 1,
			CompareKey:  key,
			Source:      source,
			Module:      entry.Module,
			DictEnglish: entry.English,
			DictKorean:  entry.Korean,
			DictRussian: entry.Russian,
			JSONEn:      jsonEn,
			JSONKo:      jsonKo,
			JSONRu:      jsonRu,
		}
		applyMatches(&row)
		rows = append(rows, row)
	}
	return rows
}

// Recompute returns a copy of rows with match columns recomputed. When
// changedKeys is non-nil only rows whose CompareKey appears in it are
// touched; all other rows pass through untouched.
func Recompute(rows []domain.ComparisonRow, changedKeys map[string]bool) []domain.ComparisonRow {
	out := domain.CloneRows(rows)
	for i := range out {
		if changedKeys != nil && !changedKeys[out[i].CompareKey] {
			continue
		}
		applyMatches(&out[i])
	}
	return out
}

func applyMatches(r *domain.ComparisonRow) {
	r.KoMatch = EvaluateMatch(r.DictKorean, r.JSONKo)
	r.EnMatch = EvaluateMatch(r.DictEnglish, r.JSONEn)
	r.RuMatch = EvaluateMatch(r.DictRussian, r.JSONRu)
	r.Overall = EvaluateOverall(r.KoMatch, r.EnMatch, r.RuMatch)
}
