package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	insertOrderSQL = `INSERT INTO swap_orders
(id, user_id, from_coin, to_coin, amount, rate, received, degraded, wallet, deposit_address, created_at, expires_at)
VALUES (:id, :user_id, :from_coin, :to_coin, :amount, :rate, :received, :degraded, :wallet, :deposit_address, :created_at, :expires_at)`
	selectOrderSQL = `SELECT id, user_id, from_coin, to_coin, amount, rate, received, degraded, wallet, deposit_address,
created_at, expires_at, acknowledged_at FROM swap_orders WHERE id = $1`
	ackOrderSQL = `UPDATE swap_orders SET acknowledged_at = COALESCE(acknowledged_at, $3) WHERE id = $1 AND user_id = $2`
	statsSQL    = `SELECT COUNT(*) AS total,
COUNT(acknowledged_at) AS acknowledged,
COUNT(*) FILTER (WHERE degraded) AS degraded,
COUNT(DISTINCT user_id) AS users
FROM swap_orders`
)

// PostgresRepository stores orders in the swap_orders table.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, o Order) error {
	if _, err := r.db.NamedExecContext(ctx, insertOrderSQL, o); err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	var o Order
	err := r.db.GetContext(ctx, &o, selectOrderSQL, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("orders: select: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) Acknowledge(ctx context.Context, id uuid.UUID, userID int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, ackOrderSQL, id, userID, at.UTC())
	if err != nil {
		return fmt.Errorf("orders: acknowledge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("orders: acknowledge: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := r.db.GetContext(ctx, &st, statsSQL); err != nil {
		return Stats{}, fmt.Errorf("orders: stats: %w", err)
	}
	return st, nil
}
