package bot

import (
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/swapstream/core/telegram/keyboard"
	"github.com/m3rciful/swapstream/internal/catalog"
	"github.com/m3rciful/swapstream/internal/review"
)

// Callback keys.
const (
	cbHome      = "home"
	cbSwapStart = "swap_start"
	cbPairs     = "pairs"
	cbPrices    = "prices"
	cbReviews   = "reviews"
	cbAbout     = "about"
	cbContact   = "contact"
	cbPair      = "pair"
	cbCoin      = "coin"
	cbCancel    = "cancel_swap"
	cbCopyAddr  = "copy_addr"
	cbSwapDone  = "swap_done"
)

const coinsPerRow = 3

var (
	btnBack   = keyboard.InlineBtn{Text: "Back", Unique: cbHome}
	btnCancel = keyboard.InlineBtn{Text: "Cancel", Unique: cbCancel}
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons(
		keyboard.InlineBtn{Text: "Home", Unique: cbHome},
		keyboard.InlineBtn{Text: "Swap", Unique: cbSwapStart},
		keyboard.InlineBtn{Text: "Pairs", Unique: cbPairs},
		keyboard.InlineBtn{Text: "Prices", Unique: cbPrices},
		keyboard.InlineBtn{Text: "Reviews", Unique: cbReviews, Data: "0"},
		keyboard.InlineBtn{Text: "About", Unique: cbAbout},
		keyboard.InlineBtn{Text: "Contact", Unique: cbContact},
	)
}

func backMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons(btnBack)
}

func cancelMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons(btnCancel)
}

// coinMenu offers every catalog coin except exclude, three per row.
func coinMenu(cat *catalog.Catalog, exclude string) *tele.ReplyMarkup {
	symbols := cat.Symbols(exclude)
	buttons := make([]keyboard.InlineBtn, len(symbols))
	for i, sym := range symbols {
		buttons[i] = keyboard.InlineBtn{Text: sym, Unique: cbCoin, Data: sym}
	}
	return keyboard.InlineButtonsNPerRow(buttons, coinsPerRow, []keyboard.InlineBtn{btnCancel})
}

func pairsMenu(cat *catalog.Catalog) *tele.ReplyMarkup {
	pairs := cat.FeaturedPairs()
	buttons := make([]keyboard.InlineBtn, 0, len(pairs)+1)
	for _, p := range pairs {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   p.From + " → " + p.To,
			Unique: cbPair,
			Data:   p.From + "_" + p.To,
		})
	}
	return keyboard.InlineButtons(append(buttons, btnBack)...)
}

func reviewsMenu(p review.Page) *tele.ReplyMarkup {
	var nav []keyboard.InlineBtn
	if p.HasPrev {
		nav = append(nav, keyboard.InlineBtn{Text: "Previous", Unique: cbReviews, Data: strconv.Itoa(p.Index - 1)})
	}
	if p.HasNext {
		nav = append(nav, keyboard.InlineBtn{Text: "Next", Unique: cbReviews, Data: strconv.Itoa(p.Index + 1)})
	}
	return keyboard.InlineButtonsRows(append(nav, btnBack))
}

func depositMenu(orderID string) *tele.ReplyMarkup {
	return keyboard.InlineButtons(
		keyboard.InlineBtn{Text: "Copy Address", Unique: cbCopyAddr},
		keyboard.InlineBtn{Text: "Done", Unique: cbSwapDone, Data: orderID},
	)
}
