// Package bot wires the swapStream screens and the swap wizard to Telegram.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/swapstream/core/telegram"
	"github.com/m3rciful/swapstream/core/telegram/commands"
	tghelpers "github.com/m3rciful/swapstream/core/telegram/helpers"
	"github.com/m3rciful/swapstream/core/telegram/keyboard"
	"github.com/m3rciful/swapstream/core/telegram/state"
	"github.com/m3rciful/swapstream/internal/catalog"
	"github.com/m3rciful/swapstream/internal/orders"
	"github.com/m3rciful/swapstream/internal/review"
	"github.com/m3rciful/swapstream/internal/swap"
)

// PriceBoard renders the live price table.
type PriceBoard interface {
	Render(ctx context.Context) string
}

// Deps are the collaborators of Bot.
type Deps struct {
	Catalog  *catalog.Catalog
	Wizard   *swap.Wizard
	Sessions state.Store[swap.Session]
	Prices   PriceBoard
	Reviews  *review.Book
	Orders   orders.Repository
	// DepositTTL is how long deposit instructions stay valid.
	DepositTTL time.Duration
}

// Bot holds the handlers. It keeps no per-user state of its own.
type Bot struct {
	catalog    *catalog.Catalog
	wizard     *swap.Wizard
	sessions   state.Store[swap.Session]
	prices     PriceBoard
	reviews    *review.Book
	orders     orders.Repository
	depositTTL time.Duration
	now        func() time.Time
}

// New validates deps and builds a Bot.
func New(d Deps) (*Bot, error) {
	switch {
	case d.Catalog == nil:
		return nil, errors.New("bot: catalog is required")
	case d.Wizard == nil:
		return nil, errors.New("bot: wizard is required")
	case d.Sessions == nil:
		return nil, errors.New("bot: session store is required")
	case d.Prices == nil:
		return nil, errors.New("bot: price board is required")
	}
	if d.Reviews == nil {
		d.Reviews = review.Default()
	}
	if d.Orders == nil {
		d.Orders = orders.NewMemoryRepository()
	}
	if d.DepositTTL <= 0 {
		d.DepositTTL = 30 * time.Minute
	}
	return &Bot{
		catalog:    d.Catalog,
		wizard:     d.Wizard,
		sessions:   d.Sessions,
		prices:     d.Prices,
		reviews:    d.Reviews,
		orders:     d.Orders,
		depositTTL: d.DepositTTL,
		now:        time.Now,
	}, nil
}

// Register adds the commands and callbacks to reg.
func (b *Bot) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{Handler: b.handleStart, Description: "Main menu"})
	reg.RegisterCommand("/help", commands.Command{Handler: b.handleHelp, Description: "This message"})
	reg.RegisterCommand("/stats", commands.Command{Handler: b.handleStats, Description: "Order journal stats", AdminOnly: true})

	callbacks := map[string]tele.HandlerFunc{
		cbHome:      b.handleHome,
		cbSwapStart: b.handleSwapStart,
		cbPairs:     b.handlePairs,
		cbPrices:    b.handlePrices,
		cbReviews:   b.handleReviews,
		cbAbout:     b.handleAbout,
		cbContact:   b.handleContact,
		cbPair:      b.handlePair,
		cbCoin:      b.handleCoin,
		cbCancel:    b.handleCancel,
		cbCopyAddr:  b.handleCopyAddr,
		cbSwapDone:  b.handleSwapDone,
	}
	for key, h := range callbacks {
		if err := reg.RegisterCallback(key, h); err != nil {
			return fmt.Errorf("bot: %w", err)
		}
	}
	reg.SetCallbackNotFound(b.UnknownCallback())
	return nil
}

// UnknownText answers text that no dialogue step expects.
func (b *Bot) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendHTML(c, textUseOptions)
	}
}

// UnknownDocument answers files, which the bot never asks for.
func (b *Bot) UnknownDocument() tele.HandlerFunc {
	return b.UnknownText()
}

// UnknownCallback answers buttons from outdated keyboards.
func (b *Bot) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.Answer(c, &tele.CallbackResponse{Text: textUseOptions})
	}
}

// RateLimited tells the user their update was dropped.
func (b *Bot) RateLimited(c tele.Context) error {
	if c.Callback() != nil {
		return tghelpers.Answer(c, &tele.CallbackResponse{Text: textRateLimited})
	}
	return nil
}

// AdminRejected answers admin commands sent by other users.
func (b *Bot) AdminRejected(c tele.Context) error {
	return tghelpers.SendHTML(c, textAdminOnly, keyboard.RemoveKeyboard())
}
