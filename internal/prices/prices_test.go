package prices

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/swapstream/internal/catalog"
)

func staticSource(quotes map[string]Price) (Source, *int32) {
	var calls int32
	return SourceFunc(func(_ context.Context, keys []string) (map[string]Price, error) {
		atomic.AddInt32(&calls, 1)
		out := make(map[string]Price, len(keys))
		for _, k := range keys {
			if p, ok := quotes[k]; ok {
				out[k] = p
			}
		}
		return out, nil
	}), &calls
}

func TestCoinGeckoPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bitcoin,monero", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Equal(t, "true", r.URL.Query().Get("include_24hr_change"))
		assert.Equal(t, "demo-key", r.Header.Get("x-cg-demo-api-key"))
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":60000.5,"usd_24h_change":-1.25},"monero":{"usd":150},"tether":{}}`))
	}))
	defer srv.Close()

	g := NewCoinGecko(srv.Client(), srv.URL+"/simple/price", "demo-key")
	got, err := g.Prices(context.Background(), []string{"bitcoin", "monero"})
	require.NoError(t, err)
	assert.Equal(t, map[string]Price{
		"bitcoin": {USD: 60000.5, Change24h: -1.25},
		"monero":  {USD: 150},
	}, got)
}

func TestCoinGeckoNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewCoinGecko(srv.Client(), srv.URL, "").Prices(context.Background(), []string{"bitcoin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCoinGeckoMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewCoinGecko(srv.Client(), srv.URL, "").Prices(context.Background(), []string{"bitcoin"})
	require.Error(t, err)
}

func TestCacheServesFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	src, calls := staticSource(map[string]Price{"bitcoin": {USD: 100, Change24h: 1}})
	cache := NewCache(client, src, time.Minute)
	ctx := context.Background()

	first, err := cache.Prices(ctx, []string{"bitcoin"})
	require.NoError(t, err)
	second, err := cache.Prices(ctx, []string{"bitcoin"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	assert.True(t, mr.Exists("price:usd:bitcoin"))

	mr.FastForward(2 * time.Minute)
	_, err = cache.Prices(ctx, []string{"bitcoin"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
}

func TestCacheFallsThroughWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	src, calls := staticSource(map[string]Price{"monero": {USD: 150}})
	got, err := NewCache(client, src, time.Minute).Prices(context.Background(), []string{"monero"})
	require.NoError(t, err)
	assert.Equal(t, 150.0, got["monero"].USD)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestLookupRate(t *testing.T) {
	cat := catalog.Default(nil)
	src, calls := staticSource(map[string]Price{
		"bitcoin":  {USD: 60000},
		"ethereum": {USD: 3000},
		"solana":   {USD: 0},
	})
	rates := NewRates(src, cat, time.Second)
	ctx := context.Background()

	rate, err := rates.LookupRate(ctx, "BTC", "ETH")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, rate, 1e-9)

	rate, err = rates.LookupRate(ctx, "xmr", "XMR")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls), "same coin must not hit the source")

	_, err = rates.LookupRate(ctx, "BTC", "DOGE")
	assert.ErrorIs(t, err, ErrUnknownCoin)

	rate, err = rates.LookupRate(ctx, "BTC", "SOL")
	assert.ErrorIs(t, err, ErrPriceMissing)
	assert.Zero(t, rate)

	_, err = rates.LookupRate(ctx, "XMR", "BTC")
	assert.ErrorIs(t, err, ErrPriceMissing)
}

func TestLookupRateSourceError(t *testing.T) {
	boom := errors.New("boom")
	src := SourceFunc(func(context.Context, []string) (map[string]Price, error) { return nil, boom })
	rate, err := NewRates(src, catalog.Default(nil), 0).LookupRate(context.Background(), "BTC", "ETH")
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, rate)
}

func TestLookupRateHonoursTimeout(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, _ []string) (map[string]Price, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, err := NewRates(src, catalog.Default(nil), 10*time.Millisecond).LookupRate(context.Background(), "BTC", "ETH")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBoardRender(t *testing.T) {
	src, _ := staticSource(map[string]Price{
		"bitcoin":  {USD: 12345.678, Change24h: 1.234},
		"ethereum": {USD: 3000, Change24h: -0.5},
		"solana":   {USD: 150.1},
		"tether":   {USD: 1},
		"monero":   {USD: 160.25, Change24h: 2},
	})
	board := NewBoard(src, catalog.Default(nil), time.FixedZone("EAT", 3*3600), 0)
	board.now = func() time.Time { return time.Date(2024, 3, 5, 12, 7, 0, 0, time.UTC) }

	got := board.Render(context.Background())
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "<b>BTC</b>: $12,345.68 Up 1.23%", lines[0])
	assert.Equal(t, "<b>ETH</b>: $3,000.00 Down 0.50%", lines[1])
	assert.Equal(t, "<b>SOL</b>: $150.10 Down 0.00%", lines[2])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "<i>Updated: Mar 05, 2024 03:07 PM EAT</i>", lines[6])
}

func TestBoardRenderUnavailable(t *testing.T) {
	src, _ := staticSource(map[string]Price{"bitcoin": {USD: 1}})
	board := NewBoard(src, catalog.Default(nil), nil, 0)
	assert.Equal(t, Unavailable, board.Render(context.Background()))

	failing := SourceFunc(func(context.Context, []string) (map[string]Price, error) { return nil, errors.New("down") })
	assert.Equal(t, Unavailable, NewBoard(failing, catalog.Default(nil), nil, 0).Render(context.Background()))
}
