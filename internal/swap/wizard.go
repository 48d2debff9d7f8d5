package swap

//go:generate mockgen -source=wizard.go -destination=wizard_mock_test.go -package=swap

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/m3rciful/swapstream/core/logger"
	"github.com/m3rciful/swapstream/internal/catalog"
)

// RateLookup converts one unit of from into units of to.
// A failed lookup returns 0 and a non-nil error.
type RateLookup interface {
	LookupRate(ctx context.Context, from, to string) (float64, error)
}

// Options tune the wizard.
type Options struct {
	// StrictQuotes keeps the session on the amount step when the rate lookup
	// fails instead of freezing a zero quote.
	StrictQuotes bool
}

// Wizard computes transitions. It keeps no per-user state.
type Wizard struct {
	rates   RateLookup
	catalog *catalog.Catalog
	opts    Options
}

// NewWizard builds a wizard over cat using rates for quotes.
func NewWizard(rates RateLookup, cat *catalog.Catalog, opts Options) *Wizard {
	return &Wizard{rates: rates, catalog: cat, opts: opts}
}

// Step applies ev to s and returns the next session together with the screen
// to show. An idle returned session means the caller should clear storage.
func (w *Wizard) Step(ctx context.Context, s Session, ev Event) (Session, Effect) {
	next, eff := w.step(ctx, s, ev)
	logger.Debug(ctx, "swap", "swap.step",
		slog.String("state", stateName(s.State)),
		slog.String("next_state", stateName(next.State)),
		slog.String("input", ev.Kind.String()),
		slog.String("result", eff.Outcome.String()),
	)
	return next, eff
}

func (w *Wizard) step(ctx context.Context, s Session, ev Event) (Session, Effect) {
	switch ev.Kind {
	case EventCancel:
		return Session{}, Effect{Outcome: OutcomeCancelled}
	case EventStart:
		return Session{State: StateSelectFrom}, Effect{Outcome: OutcomeAskFrom}
	case EventChoosePair:
		from, okFrom := w.catalog.Lookup(ev.From)
		to, okTo := w.catalog.Lookup(ev.To)
		if !okFrom || !okTo {
			return s, Effect{Outcome: OutcomeUseOptions}
		}
		next := Session{State: StateEnterAmount, From: from.Symbol, To: to.Symbol}
		return next, Effect{Outcome: OutcomeAskAmount, From: next.From, To: next.To}
	case EventChooseCoin:
		return w.chooseCoin(s, ev.Coin)
	case EventText:
		return w.text(ctx, s, ev.Text)
	}
	return s, Effect{Outcome: OutcomeIgnored}
}

func (w *Wizard) chooseCoin(s Session, symbol string) (Session, Effect) {
	coin, ok := w.catalog.Lookup(symbol)
	switch s.State {
	case StateSelectFrom:
		if !ok {
			return s, Effect{Outcome: OutcomeUseOptions}
		}
		next := Session{State: StateSelectTo, From: coin.Symbol}
		return next, Effect{Outcome: OutcomeAskTo, From: next.From, Exclude: next.From}
	case StateSelectTo:
		// The source coin is never offered here.
		if !ok || coin.Symbol == s.From {
			return s, Effect{Outcome: OutcomeUseOptions}
		}
		next := Session{State: StateEnterAmount, From: s.From, To: coin.Symbol}
		return next, Effect{Outcome: OutcomeAskAmount, From: next.From, To: next.To}
	default:
		return s, Effect{Outcome: OutcomeIgnored}
	}
}

func (w *Wizard) text(ctx context.Context, s Session, text string) (Session, Effect) {
	switch s.State {
	case StateEnterAmount:
		return w.quote(ctx, s, text)
	case StateEnterWallet:
		coin, _ := w.catalog.Lookup(s.From)
		wallet := strings.TrimSpace(text)
		return Session{}, Effect{
			Outcome:        OutcomeDeposit,
			From:           s.From,
			To:             s.To,
			Quote:          s.Quote(),
			Wallet:         wallet,
			DepositAddress: coin.DepositAddress,
		}
	default:
		return s, Effect{Outcome: OutcomeUseOptions}
	}
}

func (w *Wizard) quote(ctx context.Context, s Session, text string) (Session, Effect) {
	amount, err := ParseAmount(text)
	if err != nil {
		return s, Effect{Outcome: OutcomeInvalidAmount, From: s.From, To: s.To}
	}

	rate, err := w.rates.LookupRate(ctx, s.From, s.To)
	degraded := err != nil || rate <= 0
	if degraded {
		if w.opts.StrictQuotes {
			return s, Effect{Outcome: OutcomeQuoteUnavailable, From: s.From, To: s.To, Err: err}
		}
		rate = 0
		logger.Warn(ctx, "swap", "swap.quote",
			slog.String("status", "degraded"),
			slog.String("from", s.From),
			slog.String("to", s.To),
			slog.Any("err", err),
		)
	}

	received := amount * rate
	if math.IsInf(received, 0) {
		return s, Effect{Outcome: OutcomeInvalidAmount, From: s.From, To: s.To}
	}

	next := s
	next.State = StateEnterWallet
	next.Amount = amount
	next.Rate = rate
	next.Received = received
	next.QuoteDegraded = degraded
	return next, Effect{Outcome: OutcomeQuoted, From: s.From, To: s.To, Quote: next.Quote(), Err: err}
}

func stateName(s State) string {
	if s == StateIdle {
		return "idle"
	}
	return string(s)
}
