package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/JSHWJ/QA-helper/internal/domain"
)

type HistoryRepo struct{ *Repo }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{NewRepo(db)} }

// AddCommit stores an accepted review batch and its changes in one
// transaction, matching the all-or-nothing apply semantics.
func (r *HistoryRepo) AddCommit(ctx context.Context, c *domain.EditCommit, changes []domain.EditChange) error {
	if c.CommittedAt.IsZero() {
		c.CommittedAt = time.Now().UTC()
	}
	return WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		q := r.SQ.Insert("edit_commits").
			Columns("id", "change_count", "committed_at").
			Values(c.ID, c.ChangeCount, c.CommittedAt.Format(time.RFC3339))
		sqlStr, args, _ := q.ToSql()
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
		for _, ch := range changes {
			q := r.SQ.Insert("edit_changes").
				Columns("commit_id", "compare_key", "column_name", "old_value", "new_value").
				Values(c.ID, ch.CompareKey, ch.Column, ch.OldValue, ch.NewValue)
			sqlStr, args, _ := q.ToSql()
			if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *HistoryRepo) ListCommits(ctx context.Context, limit int) ([]*domain.EditCommit, error) {
	q := r.SQ.Select("id", "change_count", "committed_at").
		From("edit_commits").OrderBy("committed_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.EditCommit
	for rows.Next() {
		var c domain.EditCommit
		var committed string
		if err := rows.Scan(&c.ID, &c.ChangeCount, &committed); err != nil {
			return nil, err
		}
		c.CommittedAt, _ = time.Parse(time.RFC3339, committed)
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) ListChanges(ctx context.Context, commitID string) ([]*domain.EditChange, error) {
	q := r.SQ.Select("commit_id", "compare_key", "column_name", "old_value", "new_value").
		From("edit_changes").Where(sq.Eq{"commit_id": commitID}).OrderBy("id")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.EditChange
	for rows.Next() {
		var ch domain.EditChange
		if err := rows.Scan(&ch.CommitID, &ch.CompareKey, &ch.Column, &ch.OldValue, &ch.NewValue); err != nil {
			return nil, err
		}
		out = append(out, &ch)
	}
	return out, rows.Err()
}
