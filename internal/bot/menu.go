package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/swapstream/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/swapstream/core/telegram/helpers"
)

func (b *Bot) handleStart(c tele.Context) error {
	return tghelpers.SendHTML(c, textWelcome, mainMenu())
}

func (b *Bot) handleHelp(c tele.Context) error {
	return tghelpers.SendHTML(c, textHelp)
}

func (b *Bot) handleHome(c tele.Context) error {
	return tghelpers.EditHTML(c, textHome, mainMenu())
}

func (b *Bot) handleAbout(c tele.Context) error {
	return tghelpers.EditHTML(c, textAbout, backMenu())
}

func (b *Bot) handleContact(c tele.Context) error {
	return tghelpers.EditHTML(c, textContact, backMenu())
}

func (b *Bot) handlePairs(c tele.Context) error {
	return tghelpers.EditHTML(c, textPairs, pairsMenu(b.catalog))
}

func (b *Bot) handlePrices(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return tghelpers.EditHTML(c, textPricesTitle+b.prices.Render(ctx), backMenu())
}

func (b *Bot) handleReviews(c tele.Context) error {
	k, err := callbacks.PayloadInt(c)
	if err != nil {
		k = 0
	}
	page := b.reviews.Page(k)
	return tghelpers.EditHTML(c, page.Render(), reviewsMenu(page))
}
