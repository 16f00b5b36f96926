package domain

// Exported column names. These match the review table headers and are what
// CSV/XLSX exports and the changed-rows report key on.
const (
	ColSeq         = "순번"
	ColCompareKey  = "비교 Key"
	ColSource      = "데이터출처"
	ColModule      = "Main Module"
	ColDictEnglish = "Dictionary English"
	ColDictKorean  = "Dictionary Korean"
	ColDictRussian = "Dictionary Russian"
	ColJSONEn      = "en.json"
	ColJSONKo      = "ko.json"
	ColJSONRu      = "ru.json"
	ColKoMatch     = "KO_Match"
	ColEnMatch     = "EN_Match"
	ColRuMatch     = "RU_Match"
	ColOverall     = "Overall_Match"
	ColEditNote    = "수정상태"
	ColEditedAt    = "수정일시"
)

// Columns is the export column order.
var Columns = []string{
	ColSeq, ColCompareKey, ColSource, ColModule,
	ColDictEnglish, ColDictKorean, ColDictRussian,
	ColJSONEn, ColJSONKo, ColJSONRu,
	ColKoMatch, ColEnMatch, ColRuMatch, ColOverall,
	ColEditNote, ColEditedAt,
}

// EditableColumns are the cells an edit session may change.
var EditableColumns = []string{
	ColModule,
	ColDictEnglish, ColDictKorean, ColDictRussian,
	ColJSONEn, ColJSONKo, ColJSONRu,
}

// ComparisonRow is one row of the comparison table, joined on the
// normalized English compare key.
type ComparisonRow struct {
	Seq        int       `json:"seq"`
	CompareKey string    `json:"compare_key"`
	Source     RowSource `json:"source"`

	Module      string `json:"module"`
	DictEnglish string `json:"dict_en"`
	DictKorean  string `json:"dict_ko"`
	DictRussian string `json:"dict_ru"`

	JSONEn string `json:"json_en"`
	JSONKo string `json:"json_ko"`
	JSONRu string `json:"json_ru"`

	KoMatch MatchStatus `json:"ko_match"`
	EnMatch MatchStatus `json:"en_match"`
	RuMatch MatchStatus `json:"ru_match"`
	Overall MatchStatus `json:"overall_match"`

	EditNote string `json:"edit_note"`
	EditedAt string `json:"edited_at"`
}

// Cell returns the row value for an exported column name.
func (r *ComparisonRow) Cell(column string) string {
	switch column {
	case ColCompareKey:
		return r.CompareKey
	case ColSource:
		return string(r.Source)
	case ColModule:
		return r.Module
	case ColDictEnglish:
		return r.DictEnglish
	case ColDictKorean:
		return r.DictKorean
	case ColDictRussian:
		return r.DictRussian
	case ColJSONEn:
		return r.JSONEn
	case ColJSONKo:
		return r.JSONKo
	case ColJSONRu:
		return r.JSONRu
	case ColKoMatch:
		return string(r.KoMatch)
	case ColEnMatch:
		return string(r.EnMatch)
	case ColRuMatch:
		return string(r.RuMatch)
	case ColOverall:
		return string(r.Overall)
	case ColEditNote:
		return r.EditNote
	case ColEditedAt:
		return r.EditedAt
	}
	return ""
}

// SetCell writes an editable column. Returns false for columns an edit
// session may not touch.
func (r *ComparisonRow) SetCell(column, value string) bool {
	switch column {
	case ColModule:
		r.Module = value
	case ColDictEnglish:
		r.DictEnglish = value
	case ColDictKorean:
		r.DictKorean = value
	case ColDictRussian:
		r.DictRussian = value
	case ColJSONEn:
		r.JSONEn = value
	case ColJSONKo:
		r.JSONKo = value
	case ColJSONRu:
		r.JSONRu = value
	default:
		return false
	}
	return true
}

// CloneRows deep-copies a comparison table.
func CloneRows(rows []ComparisonRow) []ComparisonRow {
	out := make([]ComparisonRow, len(rows))
	copy(out, rows)
	return out
}
