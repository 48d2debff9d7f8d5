package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/swapstream/core/logger"
	"github.com/m3rciful/swapstream/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/swapstream/core/telegram/helpers"
	"github.com/m3rciful/swapstream/core/telegram/keyboard"
	"github.com/m3rciful/swapstream/core/telegram/state"
	"github.com/m3rciful/swapstream/internal/orders"
	"github.com/m3rciful/swapstream/internal/swap"
)

// sessionKey caches the loaded session on the update so InProgress and
// HandleText read storage once.
const sessionKey = "swap_session"

// InProgress reports whether the sender is inside the swap wizard.
func (b *Bot) InProgress(c tele.Context) bool {
	s, err := b.loadSession(c)
	if err != nil {
		logger.Warn(tghelpers.BuildContext(c), "sessions", "session.load",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return false
	}
	return s.Active()
}

// HandleText feeds free text to the wizard.
func (b *Bot) HandleText(c tele.Context) error {
	return b.step(c, swap.Text(c.Text()), false)
}

func (b *Bot) handleSwapStart(c tele.Context) error {
	return b.step(c, swap.Start(), true)
}

func (b *Bot) handleCoin(c tele.Context) error {
	return b.step(c, swap.ChooseCoin(callbacks.CallbackPayload(c)), true)
}

func (b *Bot) handlePair(c tele.Context) error {
	from, to, err := callbacks.PayloadPair(c, "_")
	if err != nil {
		return tghelpers.Answer(c, &tele.CallbackResponse{Text: textUseOptions})
	}
	return b.step(c, swap.ChoosePair(from, to), true)
}

func (b *Bot) handleCancel(c tele.Context) error {
	return b.step(c, swap.Cancel(), true)
}

func (b *Bot) handleCopyAddr(c tele.Context) error {
	return tghelpers.Answer(c, &tele.CallbackResponse{Text: textCopied, ShowAlert: true})
}

func (b *Bot) handleSwapDone(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if id, err := uuid.Parse(callbacks.CallbackPayload(c)); err == nil {
		if err := b.orders.Acknowledge(ctx, id, tghelpers.UserID(c), b.now()); err != nil {
			logger.Warn(ctx, "orders", "order.acknowledge",
				slog.String("status", "fail"),
				slog.String("order_id", id.String()),
				slog.String("err", err.Error()),
			)
		} else {
			logger.Info(ctx, "orders", "order.acknowledge",
				slog.String("status", "ok"),
				slog.String("order_id", id.String()),
			)
		}
	}
	return tghelpers.EditHTML(c, textSwapDone, mainMenu())
}

// step runs one wizard transition, persists the result and renders the
// effect. Button presses edit their message, typed text gets a new one.
func (b *Bot) step(c tele.Context, ev swap.Event, edit bool) error {
	ctx := tghelpers.BuildContext(c)
	userID := tghelpers.UserID(c)

	cur, err := b.loadSession(c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	next, eff := b.wizard.Step(ctx, cur, ev)

	switch {
	case next.Active():
		if err := b.sessions.Save(ctx, userID, next); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	case cur.Active():
		if err := b.sessions.Clear(ctx, userID); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	c.Set(sessionKey, next)

	return b.render(ctx, c, eff, edit)
}

func (b *Bot) render(ctx context.Context, c tele.Context, eff swap.Effect, edit bool) error {
	show := func(text string, markup *tele.ReplyMarkup) error {
		if edit {
			return tghelpers.EditHTML(c, text, markup)
		}
		return tghelpers.SendHTML(c, text, markup)
	}

	switch eff.Outcome {
	case swap.OutcomeAskFrom:
		return show(textAskFrom, coinMenu(b.catalog, ""))
	case swap.OutcomeAskTo:
		return show(askToText(eff.From), coinMenu(b.catalog, eff.Exclude))
	case swap.OutcomeAskAmount:
		return show(askAmountText(eff.From, eff.To), cancelMenu())
	case swap.OutcomeInvalidAmount:
		return tghelpers.SendHTML(c, textInvalidAmount)
	case swap.OutcomeQuoteUnavailable:
		return tghelpers.SendHTML(c, textQuoteUnavailable, cancelMenu())
	case swap.OutcomeQuoted:
		logger.Info(ctx, "swap", "swap.quote",
			slog.String("status", "ok"),
			slog.String("from", eff.Quote.From),
			slog.String("to", eff.Quote.To),
			slog.Float64("amount", eff.Quote.Amount),
			slog.Float64("rate", eff.Quote.Rate),
			slog.Float64("received", eff.Quote.Received),
			slog.Bool("degraded", eff.Quote.Degraded),
		)
		return tghelpers.SendHTML(c, summaryText(eff.Quote), keyboard.RemoveKeyboard())
	case swap.OutcomeDeposit:
		order := b.recordOrder(ctx, tghelpers.UserID(c), eff)
		return tghelpers.SendHTML(c, depositText(order), depositMenu(order.ID.String()))
	case swap.OutcomeCancelled:
		return show(textCancelled, mainMenu())
	case swap.OutcomeUseOptions:
		if c.Callback() != nil {
			return tghelpers.Answer(c, &tele.CallbackResponse{Text: textUseOptions})
		}
		return tghelpers.SendHTML(c, textUseOptions)
	default:
		return nil
	}
}

// recordOrder journals the deposit instructions. Journal failures never
// block the user.
func (b *Bot) recordOrder(ctx context.Context, userID int64, eff swap.Effect) orders.Order {
	order := orders.New(userID, eff.Quote, eff.Wallet, eff.DepositAddress, b.now(), b.depositTTL)
	if err := b.orders.Save(ctx, order); err != nil {
		logger.Error(ctx, "orders", "order.save",
			slog.String("status", "fail"),
			slog.String("order_id", order.ID.String()),
			slog.String("err", err.Error()),
		)
		return order
	}
	logger.Info(ctx, "orders", "order.save",
		slog.String("status", "ok"),
		slog.String("order_id", order.ID.String()),
		slog.String("from", order.From),
		slog.String("to", order.To),
	)
	return order
}

func (b *Bot) loadSession(c tele.Context) (swap.Session, error) {
	if s, ok := c.Get(sessionKey).(swap.Session); ok {
		return s, nil
	}
	ctx := tghelpers.BuildContext(c)
	s, _, err := b.sessions.Load(ctx, tghelpers.UserID(c))
	if errors.Is(err, state.ErrCorrupt) {
		logger.Warn(ctx, "sessions", "session.load",
			slog.String("status", "fail"),
			slog.String("cause", "corrupt"),
			slog.String("err", err.Error()),
		)
		s, err = swap.Session{}, nil
	}
	if err != nil {
		return swap.Session{}, err
	}
	c.Set(sessionKey, s)
	return s, nil
}
