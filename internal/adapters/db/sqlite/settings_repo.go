package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// exportVersionKey holds the last issued export version, in tenths
// ("0.9" before the first export so the first issued version is "1.0").
const exportVersionKey = "export_version"

type SettingsRepo struct{ *Repo }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{NewRepo(db)} }

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		return "", err
	}
	return v, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// NextExportVersion reserves and returns the next export version string
// ("1.0", "1.1", ...). The counter advances by 0.1 per export.
func (r *SettingsRepo) NextExportVersion(ctx context.Context) (string, error) {
	current := "0.9"
	if v, err := r.Get(ctx, exportVersionKey); err == nil && v != "" {
		current = v
	} else if err != nil && err != sql.ErrNoRows {
		return "", err
	}

	tenths, err := versionTenths(current)
	if err != nil {
		tenths = 9 // corrupted counter restarts at 1.0
	}
	tenths++
	next := fmt.Sprintf("%d.%d", tenths/10, tenths%10)
	if err := r.Set(ctx, exportVersionKey, next); err != nil {
		return "", err
	}
	return next, nil
}

func versionTenths(v string) (int, error) {
	whole, frac, ok := strings.Cut(v, ".")
	if !ok {
		frac = "0"
	}
	w, err := strconv.Atoi(whole)
	if err != nil {
		return 0, err
	}
	f, err := strconv.Atoi(frac)
	if err != nil || f > 9 {
		return 0, fmt.Errorf("bad version fraction %q", frac)
	}
	return w*10 + f, nil
}
