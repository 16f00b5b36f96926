// Package exporter writes versioned result files and builds the
// changed-rows report against a baseline export.
package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	expreg "github.com/JSHWJ/QA-helper/internal/adapters/exporter/registry"
	parreg "github.com/JSHWJ/QA-helper/internal/adapters/parser/registry"
	"github.com/JSHWJ/QA-helper/internal/adapters/storage"
	"github.com/JSHWJ/QA-helper/internal/domain"
	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
	"github.com/JSHWJ/QA-helper/internal/ports"
)

const exportBase = "qa_result"

type Service struct {
	Store     *storage.Store
	Exporters *expreg.Registry
	Parsers   *parreg.Registry
	Settings  ports.SettingsRepository
}

func NewService(store *storage.Store, exporters *expreg.Registry, parsers *parreg.Registry, settings ports.SettingsRepository) *Service {
	return &Service{Store: store, Exporters: exporters, Parsers: parsers, Settings: settings}
}

// ExportResult describes one written export file.
type ExportResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Version  string `json:"version"`
	Data     []byte `json:"-"`
}

// Export serializes rows in the requested format and writes the file into
// the exports folder under a versioned name. The version counter only
// advances after the serializer succeeded, so a failed export does not
// burn a number.
func (s *Service) Export(ctx context.Context, format string, rows []domain.ComparisonRow) (*ExportResult, error) {
	exp, ok := s.Exporters.Get(strings.ToLower(format))
	if !ok {
		return nil, apperrors.BadRequest("UNSUPPORTED_FORMAT", fmt.Sprintf("지원하지 않는 내보내기 형식: %s", format))
	}
	data, err := exp.Export(rows)
	if err != nil {
		return nil, apperrors.Wrap(err, "EXPORT_FAILED", "내보내기 파일 생성에 실패했습니다", 500)
	}

	version, err := s.Settings.NextExportVersion(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "EXPORT_VERSION_FAILED", "내보내기 버전 갱신에 실패했습니다", 500)
	}
	dir, err := s.Store.ExportDir()
	if err != nil {
		return nil, apperrors.Wrap(err, "EXPORT_DIR_FAILED", "내보내기 폴더를 만들 수 없습니다", 500)
	}

	filename := fmt.Sprintf("%s_v%s_%s.%s", exportBase, version, storage.Timestamp(), exp.Format())
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, apperrors.Wrap(err, "EXPORT_WRITE_FAILED", fmt.Sprintf("내보내기 파일을 쓸 수 없습니다: %s", path), 500)
	}
	return &ExportResult{Filename: filename, Path: path, Version: version, Data: data}, nil
}

// Change types in the changed-rows report.
const (
	ChangeAdded    = "추가"
	ChangeRemoved  = "삭제"
	ChangeModified = "변경"
)

// RowChange is one entry of the changed-rows report. Column/old/new are
// empty for added and removed rows.
type RowChange struct {
	Type     string `json:"type"`
	Key      string `json:"key"`
	Column   string `json:"column,omitempty"`
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
}

// columns excluded from cell comparison: the sequence number shifts when
// rows are inserted, and the edit marks are bookkeeping, not content.
var reportSkip = map[string]bool{
	domain.ColSeq:      true,
	domain.ColEditNote: true,
	domain.ColEditedAt: true,
}

// Diff compares the current table against a baseline export (CSV or XLSX,
// identified by filename extension) and lists added, removed and changed
// rows in current-table order.
func (s *Service) Diff(rows []domain.ComparisonRow, baselineName string, baseline []byte) ([]RowChange, error) {
	base, err := s.parseBaseline(baselineName, baseline)
	if err != nil {
		return nil, err
	}

	current := map[string]*domain.ComparisonRow{}
	for i := range rows {
		current[rowKeyOf(&rows[i])] = &rows[i]
	}

	var out []RowChange
	for i := range rows {
		r := &rows[i]
		key := rowKeyOf(r)
		old, ok := base[key]
		if !ok {
			out = append(out, RowChange{Type: ChangeAdded, Key: key})
			continue
		}
		for _, col := range domain.Columns {
			if reportSkip[col] {
				continue
			}
			oldV, tracked := old[col]
			if !tracked {
				continue
			}
			newV := r.Cell(col)
			if oldV != newV {
				out = append(out, RowChange{
					Type: ChangeModified, Key: key, Column: col,
					OldValue: oldV, NewValue: newV,
				})
			}
		}
	}
	for _, key := range baselineOrder(base) {
		if _, ok := current[key]; !ok {
			out = append(out, RowChange{Type: ChangeRemoved, Key: key})
		}
	}
	return out, nil
}

func rowKeyOf(r *domain.ComparisonRow) string {
	if r.CompareKey != "" {
		return r.CompareKey
	}
	return r.DictEnglish
}

// parseBaseline reads a previous export back into per-key column maps.
func (s *Service) parseBaseline(name string, data []byte) (map[string]map[string]string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	var headers []string
	var records [][]string

	switch ext {
	case ".csv":
		r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\uFEFF")))
		r.FieldsPerRecord = -1
		all, err := r.ReadAll()
		if err != nil {
			return nil, apperrors.Wrap(err, "BASELINE_PARSE_FAILED", fmt.Sprintf("기준 파일을 읽을 수 없습니다: %s", name), 400)
		}
		if len(all) > 0 {
			headers, records = all[0], all[1:]
		}
	case ".xlsx":
		p, ok := s.Parsers.Get(ext)
		if !ok {
			return nil, apperrors.BadRequest("BASELINE_UNSUPPORTED", "기준 파일은 CSV 또는 XLSX만 지원합니다")
		}
		table, err := p.Parse(data)
		if err != nil {
			return nil, apperrors.Wrap(err, "BASELINE_PARSE_FAILED", fmt.Sprintf("기준 파일을 읽을 수 없습니다: %s", name), 400)
		}
		headers, records = table.Headers, table.Records
	default:
		return nil, apperrors.BadRequest("BASELINE_UNSUPPORTED", "기준 파일은 CSV 또는 XLSX만 지원합니다")
	}

	keyCol, fallbackCol := -1, -1
	for i, h := range headers {
		switch strings.TrimSpace(h) {
		case domain.ColCompareKey:
			keyCol = i
		case domain.ColDictEnglish:
			fallbackCol = i
		}
	}
	if keyCol < 0 && fallbackCol < 0 {
		return nil, apperrors.BadRequest("BASELINE_NO_KEY", fmt.Sprintf("기준 파일에 %q 컬럼이 없습니다", domain.ColCompareKey))
	}

	out := map[string]map[string]string{}
	for _, rec := range records {
		key := ""
		if keyCol >= 0 && keyCol < len(rec) {
			key = strings.TrimSpace(rec[keyCol])
		}
		if key == "" && fallbackCol >= 0 && fallbackCol < len(rec) {
			key = strings.TrimSpace(rec[fallbackCol])
		}
		if key == "" {
			continue
		}
		cells := map[string]string{}
		for i, h := range headers {
			if i < len(rec) {
				cells[strings.TrimSpace(h)] = rec[i]
			}
		}
		out[key] = cells
	}
	return out, nil
}

// baselineOrder returns the baseline keys sorted for a stable removed-rows
// section.
func baselineOrder(base map[string]map[string]string) []string {
	keys := make([]string, 0, len(base))
	for k := range base {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
