package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jask/placefilter/internal/database"
)

// PreferenceRepo stores small JSON preference records keyed by name. Each
// row is stamped with the session that last wrote it.
type PreferenceRepo struct {
	db        *sql.DB
	sessionID string
}

func NewPreferenceRepo(db *sql.DB, sessionID string) *PreferenceRepo {
	return &PreferenceRepo{db: db, sessionID: sessionID}
}

func (r *PreferenceRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *PreferenceRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO preferences(key, value, session_id, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
	 value=excluded.value,
	 session_id=excluded.session_id,
	 updated_at=excluded.updated_at;
	`, key, value, r.sessionID, database.Now())
	return err
}

// Preference is one stored row.
type Preference struct {
	Key       string
	Value     []byte
	SessionID string
	UpdatedAt time.Time
}

func (r *PreferenceRepo) List(ctx context.Context) ([]Preference, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, session_id, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Preference
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.Key, &p.Value, &p.SessionID, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
