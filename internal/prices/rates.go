package prices

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/swapstream/core/logger"
	"github.com/m3rciful/swapstream/internal/catalog"
)

// Rates derives cross rates between catalog coins from their USD prices.
type Rates struct {
	source  Source
	catalog *catalog.Catalog
	timeout time.Duration
}

// NewRates builds a rate lookup. A positive timeout bounds each lookup.
func NewRates(source Source, cat *catalog.Catalog, timeout time.Duration) *Rates {
	return &Rates{source: source, catalog: cat, timeout: timeout}
}

// LookupRate returns how many units of to one unit of from buys.
// The same coin always yields exactly 1 without a request. On any failure the
// rate is 0 and err says why.
func (r *Rates) LookupRate(ctx context.Context, from, to string) (rate float64, err error) {
	fromCoin, ok := r.catalog.Lookup(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCoin, from)
	}
	toCoin, ok := r.catalog.Lookup(to)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCoin, to)
	}
	if fromCoin.Symbol == toCoin.Symbol {
		return 1.0, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		attrs := []slog.Attr{
			slog.String("from", fromCoin.Symbol),
			slog.String("to", toCoin.Symbol),
			slog.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Warn(ctx, "prices", "rate.lookup", append(attrs, slog.String("status", "fail"), slog.String("err", err.Error()))...)
			return
		}
		logger.Debug(ctx, "prices", "rate.lookup", append(attrs, slog.String("status", "ok"), slog.Float64("rate", rate))...)
	}()

	quotes, err := r.source.Prices(ctx, []string{fromCoin.PriceKey, toCoin.PriceKey})
	if err != nil {
		return 0, fmt.Errorf("prices: lookup %s/%s: %w", fromCoin.Symbol, toCoin.Symbol, err)
	}
	fromPrice, ok := quotes[fromCoin.PriceKey]
	if !ok || fromPrice.USD <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrPriceMissing, fromCoin.Symbol)
	}
	toPrice, ok := quotes[toCoin.PriceKey]
	if !ok || toPrice.USD <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrPriceMissing, toCoin.Symbol)
	}
	return fromPrice.USD / toPrice.USD, nil
}
