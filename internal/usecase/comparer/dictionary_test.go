package comparer

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"

	"github.com/JSHWJ/QA-helper/internal/ports"
)

func TestResolveColumns_AliasesAndTypos(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
	}{
		{"canonical", []string{"Main Module", "English", "Korean", "Russian"}},
		{"typo enlish", []string{"Module", "Enlish", "KO", "RU"}},
		{"korean labels", []string{"모듈", "영어", "한국어", "러시아어"}},
		{"case and spacing", []string{"main module", " ENGLISH ", "kor", "rus"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cm, err := ResolveColumns(tc.headers)
			require.NoError(t, err)
			require.Equal(t, 0, cm.Module)
			require.Equal(t, 1, cm.English)
			require.Equal(t, 2, cm.Korean)
			require.Equal(t, 3, cm.Russian)
		})
	}
}

func TestResolveColumns_FuzzyFallback(t *testing.T) {
	// "Koreans"/"Russians" are no alias but clear the similarity bar.
	cm, err := ResolveColumns([]string{"English", "Koreans", "Russians"})
	require.NoError(t, err)
	require.Equal(t, 1, cm.Korean)
	require.Equal(t, 2, cm.Russian)
}

func TestResolveColumns_MissingRequired(t *testing.T) {
	_, err := ResolveColumns([]string{"English", "Korean", "Notes"})
	require.Error(t, err)

	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, "DICTIONARY_COLUMNS_MISSING", appErr.Code)
	require.Contains(t, appErr.Message, "Russian")
}

func TestResolveColumns_ModuleOptional(t *testing.T) {
	cm, err := ResolveColumns([]string{"English", "Korean", "Russian"})
	require.NoError(t, err)
	require.Equal(t, -1, cm.Module)
}

func TestMergeDictionary_DuplicatesJoinInEncounterOrder(t *testing.T) {
	table := ports.Table{
		Headers: []string{"English", "Korean", "Russian"},
		Records: [][]string{
			{"Save", "저장", "Сохранить"},
			{"Load", "불러오기", "Загрузить"},
			{"Save", "보관", "Сохранение"},
			{"Save", "저장", ""}, // repeated value survives the simple join
		},
	}
	cm, err := ResolveColumns(table.Headers)
	require.NoError(t, err)

	entries := MergeDictionary(table, cm)
	require.Len(t, entries, 2)
	require.Equal(t, "Save", entries[0].English)
	require.Equal(t, "저장, 보관, 저장", entries[0].Korean)
	require.Equal(t, "Сохранить, Сохранение", entries[0].Russian)
	require.Equal(t, "Load", entries[1].English)
}

func TestMergeDictionary_DropsEmptyEnglishAndNormalizes(t *testing.T) {
	table := ports.Table{
		Headers: []string{"English", "Korean", "Russian"},
		Records: [][]string{
			{"", "버려짐", ""},
			{"  Hello World ", " 안녕 ", "“Привет”"},
		},
	}
	cm, err := ResolveColumns(table.Headers)
	require.NoError(t, err)

	entries := MergeDictionary(table, cm)
	require.Len(t, entries, 1)
	require.Equal(t, "Hello World", entries[0].English)
	require.Equal(t, "안녕", entries[0].Korean)
	require.Equal(t, "Привет", entries[0].Russian)
}
