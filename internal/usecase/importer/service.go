// Package importer takes uploads into the latest-file slots and loads the
// stored sources back for comparison.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JSHWJ/QA-helper/internal/adapters/db/sqlite"
	"github.com/JSHWJ/QA-helper/internal/adapters/parser/jsonmap"
	parreg "github.com/JSHWJ/QA-helper/internal/adapters/parser/registry"
	"github.com/JSHWJ/QA-helper/internal/adapters/storage"
	"github.com/JSHWJ/QA-helper/internal/domain"
	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
	"github.com/JSHWJ/QA-helper/internal/ports"
	"github.com/JSHWJ/QA-helper/internal/usecase/comparer"
)

// slot maps an upload alias to its storage slot and accepted extensions.
type slot struct {
	storageAlias string
	label        string
	exts         map[string]bool
}

var slots = map[string]slot{
	"dictionary": {storage.AliasDictionary, "Dictionary", map[string]bool{".xlsx": true, ".csv": true, ".tsv": true, ".txt": true}},
	"ko":         {storage.AliasKo, "ko.json", map[string]bool{".json": true}},
	"en":         {storage.AliasEn, "en.json", map[string]bool{".json": true}},
	"ru":         {storage.AliasRu, "ru.json", map[string]bool{".json": true}},
}

type Service struct {
	Store   *storage.Store
	Parsers *parreg.Registry
	JSON    *jsonmap.Parser
	Uploads ports.UploadRepository
}

func New(store *storage.Store, parsers *parreg.Registry, uploads ports.UploadRepository) *Service {
	return &Service{Store: store, Parsers: parsers, JSON: jsonmap.New(), Uploads: uploads}
}

// SaveUpload stores one uploaded file into its latest slot and records it.
func (s *Service) SaveUpload(ctx context.Context, alias, filename string, data []byte) (*domain.UploadRecord, error) {
	sl, ok := slots[alias]
	if !ok {
		return nil, apperrors.BadRequest("UNKNOWN_ALIAS", fmt.Sprintf("알 수 없는 파일 종류: %s", alias))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !sl.exts[ext] {
		return nil, apperrors.BadRequest("UNSUPPORTED_EXTENSION", fmt.Sprintf("%s: 지원하지 않는 확장자 %q", sl.label, ext))
	}
	if _, err := s.Store.SaveLatest(sl.storageAlias, filename, data); err != nil {
		return nil, apperrors.Wrap(err, "UPLOAD_STORE_FAILED", "업로드 파일 저장 실패", 500)
	}
	rec := &domain.UploadRecord{
		Alias:    sl.storageAlias,
		Filename: filename,
		Ext:      ext,
		Hash:     sqlite.HashBytes(data),
		Size:     int64(len(data)),
	}
	if err := s.Uploads.Record(ctx, rec); err != nil {
		return nil, apperrors.Wrap(err, "UPLOAD_RECORD_FAILED", "업로드 이력 기록 실패", 500)
	}
	return rec, nil
}

// LoadSources reads the stored latest files and parses them into compare
// sources. A missing dictionary is an error; missing JSON files only clear
// their loaded flag.
func (s *Service) LoadSources(ctx context.Context, includeEnKeys bool) (domain.CompareSources, error) {
	src := domain.CompareSources{IncludeEnKeys: includeEnKeys}

	data, ext, ok, err := s.Store.ReadLatest(storage.AliasDictionary)
	if err != nil {
		return src, apperrors.Wrap(err, "DICTIONARY_READ_FAILED", "딕셔너리 파일을 읽지 못했습니다", 500)
	}
	if !ok {
		return src, apperrors.NotFound("DICTIONARY_NOT_FOUND", "저장된 딕셔너리 파일이 없습니다")
	}
	parser, found := s.Parsers.Get(ext)
	if !found {
		return src, apperrors.BadRequest("UNSUPPORTED_EXTENSION", fmt.Sprintf("딕셔너리: 지원하지 않는 확장자 %q", ext))
	}
	table, err := parser.Parse(data)
	if err != nil {
		return src, apperrors.Wrap(err, "DICTIONARY_PARSE_FAILED", "딕셔너리 파일 해석 실패", 400)
	}
	entries, err := comparer.LoadDictionary(table)
	if err != nil {
		return src, err
	}
	src.Entries = entries

	src.Ko, src.KoLoaded, err = s.loadJSON(storage.AliasKo, "ko.json")
	if err != nil {
		return src, err
	}
	src.En, src.EnLoaded, err = s.loadJSON(storage.AliasEn, "en.json")
	if err != nil {
		return src, err
	}
	src.Ru, src.RuLoaded, err = s.loadJSON(storage.AliasRu, "ru.json")
	if err != nil {
		return src, err
	}
	return src, nil
}

func (s *Service) loadJSON(alias, label string) ([]domain.LocalizationEntry, bool, error) {
	data, _, ok, err := s.Store.ReadLatest(alias)
	if err != nil {
		return nil, false, apperrors.Wrap(err, "JSON_READ_FAILED", label+" 읽기 실패", 500)
	}
	if !ok {
		return nil, false, nil
	}
	entries, err := s.JSON.Parse(data)
	if err != nil {
		return nil, false, apperrors.Wrap(err, "JSON_PARSE_FAILED", label+" 해석 실패", 400)
	}
	return entries, true, nil
}

// SourceStatus is one line of the file-connection panel.
type SourceStatus struct {
	Alias     string `json:"alias"`
	Label     string `json:"label"`
	Connected bool   `json:"connected"`
	Path      string `json:"path"`
	Filename  string `json:"filename"`
}

// Status reports which latest slots hold a file.
func (s *Service) Status() []SourceStatus {
	out := make([]SourceStatus, 0, len(slots))
	for _, alias := range []string{"dictionary", "ko", "ru", "en"} {
		sl := slots[alias]
		st := SourceStatus{Alias: alias, Label: sl.label}
		if path, ok := s.Store.LatestPath(sl.storageAlias); ok {
			st.Connected = true
			st.Path = path
			st.Filename = filepath.Base(path)
		}
		out = append(out, st)
	}
	return out
}
