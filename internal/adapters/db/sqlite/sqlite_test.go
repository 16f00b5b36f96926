package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JSHWJ/QA-helper/internal/domain"
)

func testDB(t *testing.T) *SettingsRepo {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "qa_helper.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSettingsRepo(db)
}

func TestSettingsRepo_SetGet(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v1"))
	require.NoError(t, r.Set(ctx, "k", "v2"))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", v)
}

func TestSettingsRepo_NextExportVersion(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	v, err := r.NextExportVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0", v)

	v, err = r.NextExportVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.1", v)

	// carries across the whole-number boundary
	for range 9 {
		v, err = r.NextExportVersion(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, "2.0", v)
}

func TestUploadRepo_RecordAndLatest(t *testing.T) {
	db, err := Init(filepath.Join(t.TempDir(), "qa_helper.db"))
	require.NoError(t, err)
	defer db.Close()
	r := NewUploadRepo(db)
	ctx := context.Background()

	first := &domain.UploadRecord{Alias: "ko_latest", Filename: "ko.json", Ext: ".json", Hash: HashBytes([]byte("a")), Size: 1}
	require.NoError(t, r.Record(ctx, first))
	second := &domain.UploadRecord{Alias: "ko_latest", Filename: "ko_v2.json", Ext: ".json", Hash: HashBytes([]byte("b")), Size: 2}
	require.NoError(t, r.Record(ctx, second))

	got, err := r.Latest(ctx, "ko_latest")
	require.NoError(t, err)
	require.Equal(t, "ko_v2.json", got.Filename)

	all, err := r.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestHistoryRepo_CommitRoundTrip(t *testing.T) {
	db, err := Init(filepath.Join(t.TempDir(), "qa_helper.db"))
	require.NoError(t, err)
	defer db.Close()
	r := NewHistoryRepo(db)
	ctx := context.Background()

	commit := &domain.EditCommit{ID: "c-1", ChangeCount: 2}
	changes := []domain.EditChange{
		{CompareKey: "hello", Column: domain.ColDictRussian, OldValue: "Privet", NewValue: "Привет"},
		{CompareKey: "bye", Column: domain.ColJSONKo, OldValue: "", NewValue: "안녕히"},
	}
	require.NoError(t, r.AddCommit(ctx, commit, changes))

	commits, err := r.ListCommits(ctx, 0)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	require.Equal(t, 2, commits[0].ChangeCount)

	got, err := r.ListChanges(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Привет", got[0].NewValue)
}
