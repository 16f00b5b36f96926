// Package editor implements the edit-review workflow over the comparison
// table: Idle → Editing → Reviewing → Idle.
package editor

import (
	"fmt"
	"time"

	"github.com/JSHWJ/QA-helper/internal/domain"
	"github.com/JSHWJ/QA-helper/internal/normalize"
	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
	"github.com/JSHWJ/QA-helper/internal/usecase/comparer"
)

// Session owns the committed comparison table and, while a session is
// open, a frozen pre-edit snapshot plus the staged shadow copy. The
// committed rows never change except through Accept.
type Session struct {
	state     domain.EditState
	committed []domain.ComparisonRow
	snapshot  []domain.ComparisonRow
	shadow    []domain.ComparisonRow
}

func NewSession() *Session {
	return &Session{state: domain.EditIdle}
}

func (s *Session) State() domain.EditState { return s.state }

// SetRows replaces the committed table (after a compare run) and discards
// any open edit session.
func (s *Session) SetRows(rows []domain.ComparisonRow) {
	s.committed = domain.CloneRows(rows)
	s.snapshot = nil
	s.shadow = nil
	s.state = domain.EditIdle
}

// Rows returns a copy of the committed table.
func (s *Session) Rows() []domain.ComparisonRow {
	return domain.CloneRows(s.committed)
}

// WorkingRows returns what the review table should display: the staged
// shadow while a session is open, the committed table otherwise.
func (s *Session) WorkingRows() []domain.ComparisonRow {
	if s.state != domain.EditIdle {
		return domain.CloneRows(s.shadow)
	}
	return domain.CloneRows(s.committed)
}

// Reference returns the frozen pre-edit snapshot. ok is false when no
// session is open.
func (s *Session) Reference() ([]domain.ComparisonRow, bool) {
	if s.state == domain.EditIdle {
		return nil, false
	}
	return domain.CloneRows(s.snapshot), true
}

// Start opens an edit session: 수정 시작.
func (s *Session) Start() error {
	if s.state != domain.EditIdle {
		return apperrors.Conflict("EDIT_ALREADY_OPEN", "이미 수정 세션이 진행 중입니다")
	}
	if len(s.committed) == 0 {
		return apperrors.Conflict("NO_RESULT_TABLE", "비교 결과가 없습니다. 먼저 비교를 실행하세요")
	}
	s.snapshot = domain.CloneRows(s.committed)
	s.shadow = domain.CloneRows(s.committed)
	s.state = domain.EditEditing
	return nil
}

// Stage records one cell value into the shadow copy while Editing.
func (s *Session) Stage(seq int, column, value string) error {
	if s.state != domain.EditEditing {
		return apperrors.Conflict("NOT_EDITING", "수정 중이 아닙니다")
	}
	for i := range s.shadow {
		if s.shadow[i].Seq == seq {
			if !s.shadow[i].SetCell(column, value) {
				return apperrors.BadRequest("COLUMN_NOT_EDITABLE", fmt.Sprintf("수정할 수 없는 컬럼: %s", column))
			}
			return nil
		}
	}
	return apperrors.NotFound("ROW_NOT_FOUND", fmt.Sprintf("순번 %d 행이 없습니다", seq))
}

// Complete moves to Reviewing: 완료. The pending proposals stay derivable
// from the shadow until the review ends.
func (s *Session) Complete() ([]domain.EditProposal, error) {
	if s.state != domain.EditEditing {
		return nil, apperrors.Conflict("NOT_EDITING", "수정 중이 아닙니다")
	}
	s.state = domain.EditReviewing
	return s.Proposals()
}

// Proposals lists the pending changes, old vs new, in row order then
// editable-column order. Values are compared and reported normalized.
func (s *Session) Proposals() ([]domain.EditProposal, error) {
	if s.state == domain.EditIdle {
		return nil, apperrors.Conflict("NO_EDIT_SESSION", "수정 세션이 없습니다")
	}
	var out []domain.EditProposal
	for i := range s.shadow {
		before := &s.snapshot[i]
		after := &s.shadow[i]
		for _, col := range domain.EditableColumns {
			oldV := normalize.Normalize(before.Cell(col))
			newV := normalize.Normalize(after.Cell(col))
			if oldV == newV {
				continue
			}
			out = append(out, domain.EditProposal{
				Seq:        before.Seq,
				CompareKey: before.CompareKey,
				Column:     col,
				OldValue:   oldV,
				NewValue:   newV,
			})
		}
	}
	return out, nil
}

// Back returns from Reviewing to Editing without discarding proposals: 이전.
func (s *Session) Back() error {
	if s.state != domain.EditReviewing {
		return apperrors.Conflict("NOT_REVIEWING", "변경 확인 중이 아닙니다")
	}
	s.state = domain.EditEditing
	return nil
}

// Cancel discards every staged change and returns to Idle: 취소 / 모두 취소.
func (s *Session) Cancel() error {
	if s.state == domain.EditIdle {
		return apperrors.Conflict("NO_EDIT_SESSION", "수정 세션이 없습니다")
	}
	s.snapshot = nil
	s.shadow = nil
	s.state = domain.EditIdle
	return nil
}

// Accept applies all pending proposals to the committed table atomically,
// recomputes match columns for exactly the touched rows, stamps the edit
// marks and closes the session.
func (s *Session) Accept(now time.Time) ([]domain.EditProposal, error) {
	if s.state != domain.EditReviewing {
		return nil, apperrors.Conflict("NOT_REVIEWING", "변경 확인 중이 아닙니다")
	}
	proposals, err := s.Proposals()
	if err != nil {
		return nil, err
	}

	next := domain.CloneRows(s.committed)
	bySeq := map[int]int{}
	for i := range next {
		bySeq[next[i].Seq] = i
	}
	changedKeys := map[string]bool{}
	for _, p := range proposals {
		i, ok := bySeq[p.Seq]
		if !ok {
			return nil, apperrors.Conflict("ROW_VANISHED", fmt.Sprintf("순번 %d 행이 사라졌습니다", p.Seq))
		}
		if !next[i].SetCell(p.Column, p.NewValue) {
			return nil, apperrors.BadRequest("COLUMN_NOT_EDITABLE", fmt.Sprintf("수정할 수 없는 컬럼: %s", p.Column))
		}
		changedKeys[next[i].CompareKey] = true
	}

	next = comparer.Recompute(next, changedKeys)
	stamp := now.Format("2006-01-02 15:04:05")
	for i := range next {
		if changedKeys[next[i].CompareKey] {
			next[i].EditNote = "수정"
			next[i].EditedAt = stamp
		}
	}

	s.committed = next
	s.snapshot = nil
	s.shadow = nil
	s.state = domain.EditIdle
	return proposals, nil
}
