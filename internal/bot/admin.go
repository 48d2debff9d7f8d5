package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/swapstream/core/telegram/helpers"
)

func (b *Bot) handleStats(c tele.Context) error {
	st, err := b.orders.Stats(tghelpers.BuildContext(c))
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	return tghelpers.SendHTML(c, statsText(st))
}
