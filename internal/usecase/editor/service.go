package editor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JSHWJ/QA-helper/internal/domain"
	"github.com/JSHWJ/QA-helper/internal/pkg/logger"
	"github.com/JSHWJ/QA-helper/internal/ports"
)

// Service persists accepted edit commits alongside the in-memory session.
type Service struct {
	History ports.HistoryRepository
}

func NewService(history ports.HistoryRepository) *Service {
	return &Service{History: history}
}

// Accept finalizes the review: applies the staged changes to the table and
// records the commit. A persistence failure does not roll the table back;
// it is logged and the commit returned without history.
func (svc *Service) Accept(ctx context.Context, s *Session) (domain.EditCommit, error) {
	now := time.Now()
	proposals, err := s.Accept(now)
	if err != nil {
		return domain.EditCommit{}, err
	}

	commit := domain.EditCommit{
		ID:          uuid.NewString(),
		ChangeCount: len(proposals),
		CommittedAt: now,
	}
	if len(proposals) == 0 {
		return commit, nil
	}
	changes := make([]domain.EditChange, 0, len(proposals))
	for _, p := range proposals {
		changes = append(changes, domain.EditChange{
			CommitID:   commit.ID,
			CompareKey: p.CompareKey,
			Column:     p.Column,
			OldValue:   p.OldValue,
			NewValue:   p.NewValue,
		})
	}
	if svc.History != nil {
		if err := svc.History.AddCommit(ctx, &commit, changes); err != nil {
			logger.Error("failed to persist edit commit", zap.String("commit_id", commit.ID), zap.Error(err))
		}
	}
	return commit, nil
}
