// Package prices fetches USD quotes for catalog coins and derives cross rates.
package prices

import (
	"context"
	"errors"
)

var (
	// ErrUnknownCoin reports a symbol that is not in the catalog.
	ErrUnknownCoin = errors.New("prices: unknown coin")
	// ErrPriceMissing reports a response without a usable USD price.
	ErrPriceMissing = errors.New("prices: price missing")
)

// Price is the USD quote of one coin.
type Price struct {
	USD float64 `json:"usd"`
	// Change24h is the 24 hour change in percent.
	Change24h float64 `json:"change_24h"`
}

// Source returns quotes keyed by price key. Keys without data are absent from
// the result; that is not an error by itself.
type Source interface {
	Prices(ctx context.Context, keys []string) (map[string]Price, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, keys []string) (map[string]Price, error)

// Prices calls f.
func (f SourceFunc) Prices(ctx context.Context, keys []string) (map[string]Price, error) {
	return f(ctx, keys)
}
