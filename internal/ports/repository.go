package ports

import (
	"context"

	"github.com/JSHWJ/QA-helper/internal/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	NextExportVersion(ctx context.Context) (string, error)
}

type UploadRepository interface {
	Record(ctx context.Context, u *domain.UploadRecord) error
	Latest(ctx context.Context, alias string) (*domain.UploadRecord, error)
	List(ctx context.Context, limit int) ([]*domain.UploadRecord, error)
}

type HistoryRepository interface {
	AddCommit(ctx context.Context, c *domain.EditCommit, changes []domain.EditChange) error
	ListCommits(ctx context.Context, limit int) ([]*domain.EditCommit, error)
	ListChanges(ctx context.Context, commitID string) ([]*domain.EditChange, error)
}
