package domain

// MatchStatus is the per-column comparison verdict.
type MatchStatus string

const (
	MatchYes     MatchStatus = "Y"
	MatchNo      MatchStatus = "N"
	MatchMissing MatchStatus = "파일없음"
)

// RowSource tags where a compare key was seen.
type RowSource string

const (
	SourceBoth     RowSource = "양쪽"
	SourceDictOnly RowSource = "사전만"
	SourceJSONOnly RowSource = "JSON만"
)

// Language identifies one of the three localization files.
type Language string

const (
	LangKo Language = "ko"
	LangEn Language = "en"
	LangRu Language = "ru"
)
