package ports

import "github.com/JSHWJ/QA-helper/internal/domain"

// RowExporter serializes a comparison-table projection, keyed by format.
type RowExporter interface {
	Format() string
	Export(rows []domain.ComparisonRow) ([]byte, error)
}
