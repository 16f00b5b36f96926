package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/JSHWJ/QA-helper/internal/domain"
)

type UploadRepo struct{ *Repo }

func NewUploadRepo(db *sql.DB) *UploadRepo { return &UploadRepo{NewRepo(db)} }

func HashBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func (r *UploadRepo) Record(ctx context.Context, u *domain.UploadRecord) error {
	if u.UploadedAt.IsZero() {
		u.UploadedAt = time.Now().UTC()
	}
	q := r.SQ.Insert("uploads").
		Columns("alias", "filename", "ext", "hash", "size", "uploaded_at").
		Values(u.Alias, u.Filename, u.Ext, u.Hash, u.Size, u.UploadedAt.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	u.ID = id
	return nil
}

func (r *UploadRepo) Latest(ctx context.Context, alias string) (*domain.UploadRecord, error) {
	q := r.SQ.Select("id", "alias", "filename", "ext", "hash", "size", "uploaded_at").
		From("uploads").Where(sq.Eq{"alias": alias}).OrderBy("id DESC").Limit(1)
	sqlStr, args, _ := q.ToSql()
	return scanUpload(r.DB.QueryRowContext(ctx, sqlStr, args...))
}

func (r *UploadRepo) List(ctx context.Context, limit int) ([]*domain.UploadRecord, error) {
	q := r.SQ.Select("id", "alias", "filename", "ext", "hash", "size", "uploaded_at").
		From("uploads").OrderBy("id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.UploadRecord
	for rows.Next() {
		var u domain.UploadRecord
		var uploaded string
		if err := rows.Scan(&u.ID, &u.Alias, &u.Filename, &u.Ext, &u.Hash, &u.Size, &uploaded); err != nil {
			return nil, err
		}
		u.UploadedAt, _ = time.Parse(time.RFC3339, uploaded)
		out = append(out, &u)
	}
	return out, rows.Err()
}

func scanUpload(row *sql.Row) (*domain.UploadRecord, error) {
	var u domain.UploadRecord
	var uploaded string
	if err := row.Scan(&u.ID, &u.Alias, &u.Filename, &u.Ext, &u.Hash, &u.Size, &uploaded); err != nil {
		return nil, err
	}
	u.UploadedAt, _ = time.Parse(time.RFC3339, uploaded)
	return &u, nil
}
