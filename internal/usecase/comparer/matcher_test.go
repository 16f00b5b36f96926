package comparer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JSHWJ/QA-helper/internal/domain"
)

func loc(pairs ...string) []domain.LocalizationEntry {
	var out []domain.LocalizationEntry
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.LocalizationEntry{Key: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func TestEvaluateMatch(t *testing.T) {
	cases := []struct {
		name string
		dict string
		json string
		want domain.MatchStatus
	}{
		{"exact", "안녕", "안녕", domain.MatchYes},
		{"normalized equal", "안녕", " 안녕 ", domain.MatchYes},
		{"different", "안녕", "안녕하세요", domain.MatchNo},
		{"empty json is missing", "안녕", "", domain.MatchMissing},
		{"whitespace json is missing", "안녕", "  ", domain.MatchMissing},
		{"empty dict is mismatch", "", "안녕", domain.MatchNo},
		{"candidate list hit", "저장, 보관", "보관", domain.MatchYes},
		{"candidate list miss", "저장, 보관", "저장소", domain.MatchNo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, EvaluateMatch(tc.dict, tc.json))
		})
	}
}

func TestEvaluateOverall_FileMissingIsNotClean(t *testing.T) {
	require.Equal(t, domain.MatchYes,
		EvaluateOverall(domain.MatchYes, domain.MatchYes, domain.MatchYes))
	require.Equal(t, domain.MatchNo,
		EvaluateOverall(domain.MatchYes, domain.MatchMissing, domain.MatchYes))
	require.Equal(t, domain.MatchNo,
		EvaluateOverall(domain.MatchNo, domain.MatchYes, domain.MatchYes))
}

// The scenario from the review workflow: ko/ru agree after normalization,
// en.json was never supplied, so the row can never be overall-clean.
func TestBuildTable_MissingEnFile(t *testing.T) {
	src := domain.CompareSources{
		Entries: []domain.DictionaryEntry{
			{English: "Hello", Korean: "안녕", Russian: "Привет"},
		},
		Ko:       loc("Hello", "안녕"),
		Ru:       loc("Hello", "Привет"),
		KoLoaded: true,
		RuLoaded: true,
	}
	rows := BuildTable(src)
	require.Len(t, rows, 1)

	r := rows[0]
	require.Equal(t, domain.MatchYes, r.KoMatch)
	require.Equal(t, domain.MatchYes, r.RuMatch)
	require.Equal(t, domain.MatchMissing, r.EnMatch)
	require.Equal(t, domain.MatchNo, r.Overall)
	require.Equal(t, domain.SourceBoth, r.Source)
}

func TestBuildTable_OrderingAndSources(t *testing.T) {
	src := domain.CompareSources{
		Entries: []domain.DictionaryEntry{
			{English: "alpha", Korean: "가"},
			{English: "beta", Korean: "나"},
		},
		Ko:       loc("beta", "나", "gamma", "다"),
		Ru:       loc("delta", "д"),
		KoLoaded: true,
		RuLoaded: true,
	}
	rows := BuildTable(src)

	var keys []string
	for _, r := range rows {
		keys = append(keys, r.CompareKey)
	}
	require.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, keys)
	for i, r := range rows {
		require.Equal(t, i+1, r.Seq)
	}

	require.Equal(t, domain.SourceDictOnly, rows[0].Source) // alpha: no json key
	require.Equal(t, domain.SourceBoth, rows[1].Source)
	require.Equal(t, domain.SourceJSONOnly, rows[2].Source)
	require.Equal(t, domain.SourceJSONOnly, rows[3].Source)
}

func TestBuildTable_EnKeysOnlyWhenRequested(t *testing.T) {
	src := domain.CompareSources{
		En:       loc("only-en", "value"),
		EnLoaded: true,
	}
	require.Empty(t, BuildTable(src))

	src.IncludeEnKeys = true
	rows := BuildTable(src)
	require.Len(t, rows, 1)
	require.Equal(t, "only-en", rows[0].CompareKey)
}

func TestBuildTable_UnloadedFileIsMissingEverywhere(t *testing.T) {
	src := domain.CompareSources{
		Entries: []domain.DictionaryEntry{
			{English: "a", Korean: "가", Russian: "а"},
			{English: "b", Korean: "나", Russian: "б"},
		},
		Ko:       loc("a", "가", "b", "나"),
		KoLoaded: true,
		// ru.json absent entirely
	}
	for _, r := range BuildTable(src) {
		require.Equal(t, domain.MatchMissing, r.RuMatch)
		require.Equal(t, domain.MatchNo, r.Overall)
	}
}

func TestBuildTable_Deterministic(t *testing.T) {
	src := domain.CompareSources{
		Entries: []domain.DictionaryEntry{
			{English: "one", Korean: "하나"},
			{English: "two", Korean: "둘"},
			{English: "three", Korean: "셋"},
		},
		Ko:       loc("two", "둘", "four", "넷", "five", "다섯"),
		Ru:       loc("six", "шесть", "one", "один"),
		En:       loc("seven", "seven"),
		KoLoaded: true,
		RuLoaded: true,
		EnLoaded: true,
	}
	first := BuildTable(src)
	for range 20 {
		require.Equal(t, first, BuildTable(src))
	}
}

func TestBuildTable_LookupToleratesKeySpelling(t *testing.T) {
	src := domain.CompareSources{
		Entries: []domain.DictionaryEntry{
			{English: "Save File", Korean: "저장"},
		},
		Ko:       loc("save file", "저장"),
		KoLoaded: true,
	}
	rows := BuildTable(src)
	require.Len(t, rows, 1)
	require.Equal(t, domain.MatchYes, rows[0].KoMatch)
	require.Equal(t, domain.SourceBoth, rows[0].Source)
}

func TestRecompute_OnlyTouchesChangedKeys(t *testing.T) {
	src := domain.CompareSources{
		Entries: []domain.DictionaryEntry{
			{English: "a", Korean: "가", Russian: "Privet"},
			{English: "b", Korean: "나", Russian: "б"},
		},
		Ko:       loc("a", "가", "b", "나"),
		Ru:       loc("a", "Привет", "b", "б"),
		KoLoaded: true,
		RuLoaded: true,
	}
	rows := BuildTable(src)
	require.Equal(t, domain.MatchNo, rows[0].RuMatch)

	// User corrects the dictionary Russian for row "a" only.
	edited := domain.CloneRows(rows)
	edited[0].DictRussian = "Привет"
	// Stale flags on an untouched row must survive a scoped recompute.
	edited[1].KoMatch = domain.MatchNo

	out := Recompute(edited, map[string]bool{"a": true})
	require.Equal(t, domain.MatchYes, out[0].RuMatch)
	require.Equal(t, domain.MatchNo, out[1].KoMatch, "row b was not in changedKeys")

	// Full recompute repairs everything.
	full := Recompute(edited, nil)
	require.Equal(t, domain.MatchYes, full[1].KoMatch)
}
