package prices

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/swapstream/core/logger"
	"github.com/m3rciful/swapstream/core/telegram/format"
	"github.com/m3rciful/swapstream/internal/catalog"
)

// Unavailable is shown instead of the table when quotes cannot be fetched.
const Unavailable = "Warning: Prices unavailable."

// Board renders the live price table.
type Board struct {
	source  Source
	catalog *catalog.Catalog
	loc     *time.Location
	timeout time.Duration
	now     func() time.Time
}

// NewBoard builds a price table renderer. Timestamps are shown in loc.
func NewBoard(source Source, cat *catalog.Catalog, loc *time.Location, timeout time.Duration) *Board {
	if loc == nil {
		loc = time.UTC
	}
	return &Board{source: source, catalog: cat, loc: loc, timeout: timeout, now: time.Now}
}

// Rows returns the quote of every catalog coin in display order. It fails when
// any coin lacks a price.
func (b *Board) Rows(ctx context.Context) ([]catalog.Coin, []Price, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	coins := b.catalog.Coins()
	quotes, err := b.source.Prices(ctx, b.catalog.PriceKeys())
	if err != nil {
		return nil, nil, err
	}
	out := make([]Price, len(coins))
	for i, coin := range coins {
		p, ok := quotes[coin.PriceKey]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrPriceMissing, coin.Symbol)
		}
		out[i] = p
	}
	return coins, out, nil
}

// Render returns one HTML line per coin followed by the update time, or
// Unavailable on any failure.
func (b *Board) Render(ctx context.Context) string {
	coins, quotes, err := b.Rows(ctx)
	if err != nil {
		logger.Warn(ctx, "prices", "board.render",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return Unavailable
	}

	lines := make([]string, len(coins))
	for i, coin := range coins {
		lines[i] = fmt.Sprintf("%s: %s %s", format.Bold(coin.Symbol), format.USD(quotes[i].USD), format.Change(quotes[i].Change24h))
	}
	ts := b.now().In(b.loc).Format("Jan 02, 2006 03:04 PM MST")
	return strings.Join(lines, "\n") + "\n\n" + format.Italic("Updated: "+ts)
}
