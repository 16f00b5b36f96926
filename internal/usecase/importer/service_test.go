package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JSHWJ/QA-helper/internal/adapters/db/sqlite"
	"github.com/JSHWJ/QA-helper/internal/adapters/parser/csvtable"
	parreg "github.com/JSHWJ/QA-helper/internal/adapters/parser/registry"
	"github.com/JSHWJ/QA-helper/internal/adapters/parser/xlsxtable"
	"github.com/JSHWJ/QA-helper/internal/adapters/storage"
	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
)

func newService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.New(dir)
	require.NoError(t, err)

	db, err := sqlite.Init(filepath.Join(dir, "qa_helper.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	parsers := parreg.New()
	parsers.Register(csvtable.New())
	parsers.Register(csvtable.NewTab())
	parsers.Register(xlsxtable.New())

	return New(store, parsers, sqlite.NewUploadRepo(db))
}

func TestSaveUpload_ValidatesAliasAndExtension(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.SaveUpload(ctx, "bogus", "x.csv", []byte("a"))
	require.Error(t, err)
	require.Equal(t, "UNKNOWN_ALIAS", appCode(t, err))

	_, err = s.SaveUpload(ctx, "ko", "ko.csv", []byte("a"))
	require.Error(t, err)
	require.Equal(t, "UNSUPPORTED_EXTENSION", appCode(t, err))

	rec, err := s.SaveUpload(ctx, "ko", "ko.json", []byte(`{"a":"b"}`))
	require.NoError(t, err)
	require.Equal(t, storage.AliasKo, rec.Alias)
	require.NotEmpty(t, rec.Hash)
	require.EqualValues(t, 9, rec.Size)
}

func TestLoadSources_RequiresDictionary(t *testing.T) {
	s := newService(t)
	_, err := s.LoadSources(context.Background(), false)
	require.Error(t, err)
	require.Equal(t, "DICTIONARY_NOT_FOUND", appCode(t, err))
}

func TestLoadSources_MissingJSONIsNotFatal(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.SaveUpload(ctx, "dictionary", "dict.csv",
		[]byte("English,Korean,Russian\nSave,저장,Сохранить\n"))
	require.NoError(t, err)
	_, err = s.SaveUpload(ctx, "ko", "ko.json", []byte(`{"Save":"저장"}`))
	require.NoError(t, err)

	src, err := s.LoadSources(ctx, false)
	require.NoError(t, err)
	require.Len(t, src.Entries, 1)
	require.True(t, src.KoLoaded)
	require.False(t, src.EnLoaded)
	require.False(t, src.RuLoaded)
	require.Len(t, src.Ko, 1)
}

func TestLoadSources_MalformedJSONIsFatal(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.SaveUpload(ctx, "dictionary", "dict.csv",
		[]byte("English,Korean,Russian\nSave,저장,Сохранить\n"))
	require.NoError(t, err)
	_, err = s.SaveUpload(ctx, "ko", "ko.json", []byte(`{"Save":`))
	require.NoError(t, err)

	_, err = s.LoadSources(ctx, false)
	require.Error(t, err)
	require.Equal(t, "JSON_PARSE_FAILED", appCode(t, err))
}

func TestSaveUpload_ReplacesSlotAcrossExtensions(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.SaveUpload(ctx, "dictionary", "dict.csv",
		[]byte("English,Korean,Russian\nSave,저장,Сохранить\n"))
	require.NoError(t, err)
	_, err = s.SaveUpload(ctx, "dictionary", "dict.tsv",
		[]byte("English\tKorean\tRussian\nOpen\t열기\tОткрыть\n"))
	require.NoError(t, err)

	src, err := s.LoadSources(ctx, false)
	require.NoError(t, err)
	require.Len(t, src.Entries, 1)
	require.Equal(t, "Open", src.Entries[0].English)
}

func TestStatus_ReflectsStoredSlots(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	st := s.Status()
	require.Len(t, st, 4)
	for _, line := range st {
		require.False(t, line.Connected)
	}

	_, err := s.SaveUpload(ctx, "ko", "ko.json", []byte(`{"a":"b"}`))
	require.NoError(t, err)

	byAlias := map[string]SourceStatus{}
	for _, line := range s.Status() {
		byAlias[line.Alias] = line
	}
	require.True(t, byAlias["ko"].Connected)
	require.Equal(t, "ko_latest.json", byAlias["ko"].Filename)
	require.False(t, byAlias["dictionary"].Connected)
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}
