package domain

// DictionaryEntry is one merged glossary row. English is the merge key;
// duplicate rows are comma-joined into Module/Korean/Russian.
type DictionaryEntry struct {
	Module  string `json:"module"`
	English string `json:"english"`
	Korean  string `json:"korean"`
	Russian string `json:"russian"`
}

// LocalizationEntry is one key/value pair from a localization JSON file.
// Entries keep document order so the comparison table stays deterministic.
type LocalizationEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CompareSources bundles everything the matcher needs for one run.
type CompareSources struct {
	Entries []DictionaryEntry
	Ko      []LocalizationEntry
	En      []LocalizationEntry
	Ru      []LocalizationEntry

	// Loaded flags distinguish "file absent" from "file present but empty".
	KoLoaded bool
	EnLoaded bool
	RuLoaded bool

	// IncludeEnKeys adds en.json-only keys to the comparison table.
	IncludeEnKeys bool
}
