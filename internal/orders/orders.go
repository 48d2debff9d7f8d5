// Package orders journals the deposit instructions handed out by the wizard.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m3rciful/swapstream/internal/swap"
)

// ErrNotFound reports an unknown order or one owned by another user.
var ErrNotFound = errors.New("orders: not found")

// Order is one issued set of deposit instructions.
type Order struct {
	ID             uuid.UUID  `db:"id"`
	UserID         int64      `db:"user_id"`
	From           string     `db:"from_coin"`
	To             string     `db:"to_coin"`
	Amount         float64    `db:"amount"`
	Rate           float64    `db:"rate"`
	Received       float64    `db:"received"`
	Degraded       bool       `db:"degraded"`
	Wallet         string     `db:"wallet"`
	DepositAddress string     `db:"deposit_address"`
	CreatedAt      time.Time  `db:"created_at"`
	ExpiresAt      time.Time  `db:"expires_at"`
	AcknowledgedAt *time.Time `db:"acknowledged_at"`
}

// New builds an order for userID from a finished quote.
func New(userID int64, q swap.Quote, wallet, depositAddress string, now time.Time, ttl time.Duration) Order {
	now = now.UTC()
	return Order{
		ID:             uuid.New(),
		UserID:         userID,
		From:           q.From,
		To:             q.To,
		Amount:         q.Amount,
		Rate:           q.Rate,
		Received:       q.Received,
		Degraded:       q.Degraded,
		Wallet:         wallet,
		DepositAddress: depositAddress,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}
}

// Stats summarises the journal.
type Stats struct {
	Total        int `db:"total"`
	Acknowledged int `db:"acknowledged"`
	Degraded     int `db:"degraded"`
	Users        int `db:"users"`
}

// Repository stores orders.
type Repository interface {
	Save(ctx context.Context, o Order) error
	Get(ctx context.Context, id uuid.UUID) (Order, error)
	// Acknowledge marks the order of userID as confirmed by its owner. The
	// first acknowledgement time is kept.
	Acknowledge(ctx context.Context, id uuid.UUID, userID int64, at time.Time) error
	Stats(ctx context.Context) (Stats, error)
}
