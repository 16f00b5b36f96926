package jsonmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JSHWJ/QA-helper/internal/domain"
)

func TestParse_DocumentOrder(t *testing.T) {
	data := []byte(`{"zeta":"z","alpha":"a","mid":"m"}`)
	entries, err := New().Parse(data)
	require.NoError(t, err)
	require.Equal(t, []domain.LocalizationEntry{
		{Key: "zeta", Value: "z"},
		{Key: "alpha", Value: "a"},
		{Key: "mid", Value: "m"},
	}, entries)
}

func TestParse_NormalizesKeysAndValues(t *testing.T) {
	data := []byte("\xEF\xBB\xBF{\" greet \":\"\\u00A0안녕  하세요 \"}")
	entries, err := New().Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "greet", entries[0].Key)
	require.Equal(t, "안녕 하세요", entries[0].Value)
}

func TestParse_SkipsMetadataAndNested(t *testing.T) {
	data := []byte(`{"$schema":"x","nested":{"a":1},"list":[1],"n":3,"b":true,"ok":"v"}`)
	entries, err := New().Parse(data)
	require.NoError(t, err)
	require.Equal(t, []domain.LocalizationEntry{
		{Key: "n", Value: "3"},
		{Key: "b", Value: "true"},
		{Key: "ok", Value: "v"},
	}, entries)
}

func TestParse_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	data := []byte(`{"a":"1","b":"2","a ":"3"}`)
	entries, err := New().Parse(data)
	require.NoError(t, err)
	require.Equal(t, []domain.LocalizationEntry{
		{Key: "a", Value: "3"},
		{Key: "b", Value: "2"},
	}, entries)
}

func TestParse_Malformed(t *testing.T) {
	_, err := New().Parse([]byte(`{"a":`))
	require.Error(t, err)

	_, err = New().Parse([]byte(`["not","an","object"]`))
	require.Error(t, err)
}
