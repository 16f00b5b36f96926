package ports

// Table is a parsed tabular file: one header row plus records.
type Table struct {
	Headers []string
	Records [][]string
}

// TableParser parses one dictionary file format, keyed by extension.
type TableParser interface {
	Extensions() []string
	Parse(data []byte) (Table, error)
}
