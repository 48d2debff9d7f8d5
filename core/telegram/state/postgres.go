package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	selectSessionSQL = `SELECT data, updated_at FROM swap_sessions WHERE user_id = $1`
	upsertSessionSQL = `INSERT INTO swap_sessions (user_id, data, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	deleteSessionSQL = `DELETE FROM swap_sessions WHERE user_id = $1`
)

type sessionRow struct {
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresStore keeps sessions as JSONB rows in the swap_sessions table.
type PostgresStore[T any] struct {
	db  *sqlx.DB
	ttl time.Duration
	now clock
}

// NewPostgresStore builds a Postgres-backed Store. A zero ttl keeps rows forever.
func NewPostgresStore[T any](db *sqlx.DB, ttl time.Duration) *PostgresStore[T] {
	return &PostgresStore[T]{db: db, ttl: ttl, now: time.Now}
}

func (s *PostgresStore[T]) Load(ctx context.Context, userID int64) (T, bool, error) {
	var (
		v   T
		row sessionRow
	)
	err := s.db.GetContext(ctx, &row, selectSessionSQL, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("state: select session: %w", err)
	}
	if expired(row.UpdatedAt, s.ttl, s.now()) {
		return v, false, nil
	}
	if err := json.Unmarshal(row.Data, &v); err != nil {
		return v, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return v, true, nil
}

func (s *PostgresStore[T]) Save(ctx context.Context, userID int64, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("state: encode session: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, upsertSessionSQL, userID, data, s.now().UTC()); err != nil {
		return fmt.Errorf("state: upsert session: %w", err)
	}
	return nil
}

func (s *PostgresStore[T]) Clear(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, deleteSessionSQL, userID); err != nil {
		return fmt.Errorf("state: delete session: %w", err)
	}
	return nil
}
