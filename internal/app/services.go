package app

import (
	"fmt"
	"time"
	// The price board timezone must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"

	coreconfig "github.com/m3rciful/swapstream/core/config"
	"github.com/m3rciful/swapstream/core/telegram/netutil"
	"github.com/m3rciful/swapstream/internal/catalog"
	"github.com/m3rciful/swapstream/internal/prices"
)

// Pricing bundles the price-backed services shared by the bot and the CLI.
type Pricing struct {
	Catalog *catalog.Catalog
	Source  prices.Source
	Rates   *prices.Rates
	Board   *prices.Board
}

// NewPricing builds the CoinGecko client, the optional Redis cache in front
// of it, the rate lookup and the price board. rdb may be nil.
func NewPricing(cfg *coreconfig.Config, rdb redis.Cmdable) (*Pricing, error) {
	loc, err := time.LoadLocation(cfg.Prices.Timezone)
	if err != nil {
		return nil, fmt.Errorf("app: prices timezone: %w", err)
	}
	cat := catalog.Default(cfg.Swap.DepositAddresses)

	client := netutil.NewHTTPClient(netutil.ClientOptions{
		Timeout: cfg.Prices.Timeout,
		Retries: cfg.Prices.Retries,
	})
	var src prices.Source = prices.NewCoinGecko(client, cfg.Prices.Endpoint, cfg.Prices.APIKey)
	if rdb != nil && cfg.Prices.CacheTTL > 0 {
		src = prices.NewCache(rdb, src, cfg.Prices.CacheTTL)
	}

	return &Pricing{
		Catalog: cat,
		Source:  src,
		Rates:   prices.NewRates(src, cat, cfg.Prices.Timeout),
		Board:   prices.NewBoard(src, cat, loc, cfg.Prices.Timeout),
	}, nil
}
