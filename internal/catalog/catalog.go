// Package catalog lists the coins the bot can swap between.
package catalog

import (
	"fmt"
	"strings"
)

// Coin is one supported currency.
type Coin struct {
	Symbol string
	Name   string
	// PriceKey is the CoinGecko id used to look up the USD price.
	PriceKey       string
	DepositAddress string
}

// Pair is an ordered from/to combination offered as a shortcut.
type Pair struct {
	From string
	To   string
}

// Catalog is an immutable ordered set of coins.
type Catalog struct {
	coins    []Coin
	bySymbol map[string]int
	featured []Pair
}

var defaultCoins = []Coin{
	{Symbol: "BTC", Name: "Bitcoin", PriceKey: "bitcoin", DepositAddress: "bc1qvxzvx0hdcahwys5v4yuqh5er9myuy4hcj3yudl"},
	{Symbol: "ETH", Name: "Ethereum", PriceKey: "ethereum", DepositAddress: "0xD283a690F43243A42Af8BD3bE3652EFc7494B71C"},
	{Symbol: "SOL", Name: "Solana", PriceKey: "solana", DepositAddress: "3FKvzXKdwPpFxqD5K8xBerje4KwdrTrVfBZniWi35mws"},
	{Symbol: "USDT", Name: "Tether", PriceKey: "tether", DepositAddress: "0xD283a690F43243A42Af8BD3bE3652EFc7494B71C"},
	{Symbol: "XMR", Name: "Monero", PriceKey: "monero", DepositAddress: "87oQweF8uXjYA9wRch4dXaAfSAuT8unB9FBuBFH9BTktDTB8gN17B2Zb5N35x1Fad12TRnq7yJjuJBtQVPWuagXyGTjCBBb"},
}

// featuredHub is paired with every other coin in both directions on the Pairs screen.
const featuredHub = "XMR"

// New builds a catalog from coins in display order. Symbols are upper-cased
// and must be unique.
func New(coins []Coin) (*Catalog, error) {
	c := &Catalog{bySymbol: make(map[string]int, len(coins))}
	for _, coin := range coins {
		coin.Symbol = strings.ToUpper(strings.TrimSpace(coin.Symbol))
		if coin.Symbol == "" || coin.PriceKey == "" {
			return nil, fmt.Errorf("catalog: coin %q needs a symbol and a price key", coin.Symbol)
		}
		if _, dup := c.bySymbol[coin.Symbol]; dup {
			return nil, fmt.Errorf("catalog: duplicate coin %s", coin.Symbol)
		}
		c.bySymbol[coin.Symbol] = len(c.coins)
		c.coins = append(c.coins, coin)
	}
	if _, ok := c.bySymbol[featuredHub]; ok {
		for _, coin := range c.coins {
			if coin.Symbol == featuredHub {
				continue
			}
			c.featured = append(c.featured,
				Pair{From: coin.Symbol, To: featuredHub},
				Pair{From: featuredHub, To: coin.Symbol},
			)
		}
	}
	return c, nil
}

// Default returns BTC, ETH, SOL, USDT and XMR with sample deposit addresses,
// replacing addresses found in overrides (keyed by symbol).
func Default(overrides map[string]string) *Catalog {
	coins := make([]Coin, len(defaultCoins))
	copy(coins, defaultCoins)
	for i := range coins {
		for sym, addr := range overrides {
			if strings.EqualFold(sym, coins[i].Symbol) && strings.TrimSpace(addr) != "" {
				coins[i].DepositAddress = strings.TrimSpace(addr)
			}
		}
	}
	c, err := New(coins)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup finds a coin by symbol, case-insensitively.
func (c *Catalog) Lookup(symbol string) (Coin, bool) {
	i, ok := c.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return Coin{}, false
	}
	return c.coins[i], true
}

// Contains reports whether symbol is supported.
func (c *Catalog) Contains(symbol string) bool {
	_, ok := c.Lookup(symbol)
	return ok
}

// Coins returns all coins in display order.
func (c *Catalog) Coins() []Coin {
	return append([]Coin(nil), c.coins...)
}

// Symbols returns the symbols in display order, leaving out exclude.
func (c *Catalog) Symbols(exclude string) []string {
	out := make([]string, 0, len(c.coins))
	for _, coin := range c.coins {
		if !strings.EqualFold(coin.Symbol, exclude) {
			out = append(out, coin.Symbol)
		}
	}
	return out
}

// PriceKeys returns the CoinGecko ids of all coins in display order.
func (c *Catalog) PriceKeys() []string {
	out := make([]string, len(c.coins))
	for i, coin := range c.coins {
		out[i] = coin.PriceKey
	}
	return out
}

// FeaturedPairs returns the pair shortcuts shown on the Pairs screen.
func (c *Catalog) FeaturedPairs() []Pair {
	return append([]Pair(nil), c.featured...)
}
