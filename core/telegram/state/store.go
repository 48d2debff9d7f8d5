package state

import (
	"context"
	"errors"
	"time"
)

// ErrCorrupt reports a stored session that could not be decoded.
var ErrCorrupt = errors.New("state: corrupt session")

// Store persists one session value of type T per Telegram user.
type Store[T any] interface {
	// Load returns the stored session; ok is false when none exists or it expired.
	Load(ctx context.Context, userID int64) (T, bool, error)
	Save(ctx context.Context, userID int64, v T) error
	Clear(ctx context.Context, userID int64) error
}

// clock is replaced in tests.
type clock func() time.Time

func expired(updated time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(updated) > ttl
}
