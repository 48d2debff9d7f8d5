// Package app assembles the swapStream bot from configuration and infrastructure.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/m3rciful/swapstream/core/bootstrap"
	"github.com/m3rciful/swapstream/core/cmd"
	coreconfig "github.com/m3rciful/swapstream/core/config"
	"github.com/m3rciful/swapstream/core/logger"
	tg "github.com/m3rciful/swapstream/core/telegram"
	"github.com/m3rciful/swapstream/core/telegram/router"
	"github.com/m3rciful/swapstream/core/telegram/sender"
	"github.com/m3rciful/swapstream/core/telegram/state"
	"github.com/m3rciful/swapstream/internal/bot"
	"github.com/m3rciful/swapstream/internal/ops"
	"github.com/m3rciful/swapstream/internal/orders"
	"github.com/m3rciful/swapstream/internal/swap"
)

const sessionKeyPrefix = "swap:session"

// App is a fully wired bot ready to run.
type App struct {
	cfg      *coreconfig.Config
	infra    *bootstrap.Result
	registry *tg.Registry
	bot      *bot.Bot
	ops      *ops.Server
}

// Bootstrap brings up infrastructure for cfg and wires the bot on top of it.
func Bootstrap(ctx context.Context, cfg *coreconfig.Config) (cmd.TelegramApp, error) {
	infra, err := bootstrap.Run(ctx, bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}
	a, err := New(cfg, infra)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	return a, nil
}

// New wires the bot over already initialized infrastructure.
func New(cfg *coreconfig.Config, infra *bootstrap.Result) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if infra == nil {
		infra = &bootstrap.Result{}
	}

	var rdb redis.Cmdable
	if infra.Redis != nil {
		rdb = infra.Redis
	}
	pricing, err := NewPricing(cfg, rdb)
	if err != nil {
		return nil, err
	}
	sessions, err := newSessionStore(cfg, infra)
	if err != nil {
		return nil, err
	}
	journal, err := newOrderRepository(cfg, infra)
	if err != nil {
		return nil, err
	}

	b, err := bot.New(bot.Deps{
		Catalog:    pricing.Catalog,
		Wizard:     swap.NewWizard(pricing.Rates, pricing.Catalog, swap.Options{StrictQuotes: cfg.Swap.StrictQuotes}),
		Sessions:   sessions,
		Prices:     pricing.Board,
		Orders:     journal,
		DepositTTL: cfg.Swap.DepositTTL,
	})
	if err != nil {
		return nil, err
	}
	reg := tg.NewRegistry()
	if err := b.Register(reg); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, infra: infra, registry: reg, bot: b}
	if cfg.Ops.Listen != "" {
		a.ops = ops.NewServer(cfg.Ops.Listen, readinessChecks(infra)...)
	}
	logger.Info(context.Background(), "app", "wired",
		slog.String("sessions", cfg.Storage.Sessions),
		slog.String("orders", cfg.Storage.Orders),
		slog.Bool("price_cache", rdb != nil && cfg.Prices.CacheTTL > 0),
		slog.Bool("strict_quotes", cfg.Swap.StrictQuotes),
	)
	return a, nil
}

// TelegramRunOptions returns routes, middlewares and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: a.bot.AdminRejected,
	})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{
		NotFound: a.bot.UnknownCallback(),
	}))
	routes = append(routes, router.TextRoutes(a.bot, a.registry, router.TextOptions{
		UnknownText:     a.bot.UnknownText(),
		UnknownDocument: a.bot.UnknownDocument(),
	})...)

	return tg.RunOptions{
		Config:            a.cfg,
		Registry:          a.registry,
		DispatcherOptions: sender.Options{Workers: 4, QueueSize: 256, MaxRetries: 2},
		Middlewares:       tg.DefaultMiddlewares(a.cfg, a.bot.RateLimited),
		Routes:            routes,
		OnStart: func(context.Context, tg.Runtime) error {
			if a.ops != nil {
				a.ops.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context, _ tg.Runtime) error {
			if a.ops != nil {
				return a.ops.Shutdown(ctx)
			}
			return nil
		},
	}, nil
}

// Close releases database and Redis connections.
func (a *App) Close() error {
	return a.infra.Close()
}

func newSessionStore(cfg *coreconfig.Config, infra *bootstrap.Result) (state.Store[swap.Session], error) {
	ttl := cfg.Storage.SessionTTL
	switch cfg.Storage.Sessions {
	case coreconfig.BackendRedis:
		if infra.Redis == nil {
			return nil, errors.New("app: redis session store needs a redis client")
		}
		return state.NewRedisStore[swap.Session](infra.Redis, sessionKeyPrefix, ttl), nil
	case coreconfig.BackendPostgres:
		if infra.DB == nil {
			return nil, errors.New("app: postgres session store needs a database")
		}
		return state.NewPostgresStore[swap.Session](infra.DB, ttl), nil
	case coreconfig.BackendMemory, "":
		return state.NewMemoryStore[swap.Session](ttl), nil
	default:
		return nil, fmt.Errorf("app: unknown session backend %q", cfg.Storage.Sessions)
	}
}

func newOrderRepository(cfg *coreconfig.Config, infra *bootstrap.Result) (orders.Repository, error) {
	switch cfg.Storage.Orders {
	case coreconfig.BackendPostgres:
		if infra.DB == nil {
			return nil, errors.New("app: postgres order journal needs a database")
		}
		return orders.NewPostgresRepository(infra.DB), nil
	case coreconfig.BackendMemory, "":
		return orders.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("app: unknown order backend %q", cfg.Storage.Orders)
	}
}

func readinessChecks(infra *bootstrap.Result) []ops.Check {
	var checks []ops.Check
	if infra.DB != nil {
		checks = append(checks, ops.Check{Name: "postgres", Ping: infra.DB.PingContext})
	}
	if infra.Redis != nil {
		rdb := infra.Redis
		checks = append(checks, ops.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	return checks
}
