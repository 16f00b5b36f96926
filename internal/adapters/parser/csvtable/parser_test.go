package csvtable

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func TestParse_CommaWithBOM(t *testing.T) {
	data := []byte("\xEF\xBB\xBFEnglish,Korean,Russian\nSave,저장,Сохранить\n")
	table, err := New().Parse(data)
	require.NoError(t, err)
	require.Equal(t, []string{"English", "Korean", "Russian"}, table.Headers)
	require.Len(t, table.Records, 1)
	require.Equal(t, "저장", table.Records[0][1])
}

func TestParse_TabSeparated(t *testing.T) {
	data := []byte("English\tKorean\nSave\t저장\n")
	table, err := NewTab().Parse(data)
	require.NoError(t, err)
	require.Equal(t, []string{"English", "Korean"}, table.Headers)
	require.Equal(t, "Save", table.Records[0][0])
}

func TestParse_PadsShortRows(t *testing.T) {
	data := []byte("English,Korean,Russian\nSave,저장\n")
	table, err := New().Parse(data)
	require.NoError(t, err)
	require.Len(t, table.Records[0], 3)
	require.Equal(t, "", table.Records[0][2])
}

func TestParse_CP949Fallback(t *testing.T) {
	utf8Data := "English,Korean\nSave,저장\n"
	encoded, _, err := transform.String(korean.EUCKR.NewEncoder(), utf8Data)
	require.NoError(t, err)

	table, err := New().Parse([]byte(encoded))
	require.NoError(t, err)
	require.Equal(t, "저장", table.Records[0][1])
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := New().Parse(nil)
	require.Error(t, err)
}
