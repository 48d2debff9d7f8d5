package bot

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m3rciful/swapstream/core/telegram/format"
	"github.com/m3rciful/swapstream/internal/orders"
	"github.com/m3rciful/swapstream/internal/swap"
)

const (
	textWelcome = "Welcome to <b>swapStream Bot</b>\n" +
		"Any-to-Any Crypto Swap • No KYC • Private • Fast\n\n" +
		"Choose:"

	textHelp = "<b>swapStream Bot Description</b>\n\n" +
		"Instant, private, no-KYC crypto swaps. Any coin to any coin.\n" +
		"BTC • ETH • SOL • USDT • Monera\n\n" +
		"Commands:\n" +
		"/start - Main menu\n" +
		"/help - This message\n\n" +
		"Use buttons for navigation."

	textHome = "<b>Home</b>\n\n" +
		"1,040+ Swaps Completed\n" +
		"$280K+ Total Volume\n" +
		"4.3/5 Average Rating\n\n" +
		"Start swapping now!"

	textAbout = "<b>About swapStream</b>\n\n" +
		"swapStream: Instant, private, no-KYC crypto swaps. Any coin to any coin.\n" +
		"BTC • ETH • SOL • USDT • Monera\n\n" +
		"No registration. Fast and secure."

	textContact = "<b>Contact Us</b>\n\n" +
		"Email: <a href=\"mailto:swapstream@tuta.io\">swapstream@tuta.io</a>\n" +
		"We respond within <b>2 hours</b> (24/7)"

	textPairs       = "<b>All Swap Pairs</b>\n\nTap to start swap."
	textPricesTitle = "<b>Live Prices</b>\n\n"
	textAskFrom     = "<b>Swap Wizard</b>\n\nSelect <b>From Coin</b>:"

	textInvalidAmount    = "Enter a valid number (e.g., 0.01):"
	textQuoteUnavailable = "Quote unavailable, please retry.\n\nEnter <b>Amount</b>:"
	textRateUnavailable  = "<i>Warning: Live rate unavailable. The amount to receive will be confirmed manually.</i>"

	textCancelled   = "Swap cancelled."
	textSwapDone    = "Swap completed! Check your wallet.\nStatus: Confirmed."
	textUseOptions  = "Use buttons or /start."
	textCopied      = "Address copied! (Long press)"
	textRateLimited = "Too many requests, please slow down."
	textAdminOnly   = "This command is not available."
)

func askToText(from string) string {
	return format.Bold("From:") + " " + format.Escape(from) + "\n\nSelect " + format.Bold("To Coin") + ":"
}

func askAmountText(from, to string) string {
	return format.Bold("From:") + " " + format.Escape(from) + "\n" +
		format.Bold("To:") + " " + format.Escape(to) + "\n\n" +
		"Enter " + format.Bold("Amount") + ":"
}

func summaryText(q swap.Quote) string {
	var sb strings.Builder
	sb.WriteString(format.Bold("Summary") + "\n")
	fmt.Fprintf(&sb, "Send: %s %s\n", format.Bold(format.Plain(q.Amount)), format.Escape(q.From))
	fmt.Fprintf(&sb, "Get: %s %s\n", format.Bold(format.Fixed(q.Received, 6)), format.Escape(q.To))
	fmt.Fprintf(&sb, "Rate: 1 %s ≈ %s %s\n", format.Escape(q.From), format.Fixed(q.Rate, 6), format.Escape(q.To))
	if q.Degraded {
		sb.WriteString(textRateUnavailable + "\n")
	}
	sb.WriteString("\nEnter " + format.Bold(q.To+" wallet") + ":")
	return sb.String()
}

func depositText(o orders.Order) string {
	var sb strings.Builder
	sb.WriteString(format.Bold("Deposit Required") + "\n\n")
	fmt.Fprintf(&sb, "Send %s to:\n%s\n\n", format.Bold(format.Fixed(o.Amount, 8)+" "+o.From), format.Code(o.DepositAddress))
	sb.WriteString(format.Italic("Expires in "+expiryWords(o.ExpiresAt.Sub(o.CreatedAt))) + "\n")
	fmt.Fprintf(&sb, "After payment, %s %s → %s\n\n", format.Fixed(o.Received, 6), format.Escape(o.To), format.Code(o.Wallet))
	sb.WriteString(format.Bold("Status: Pending confirmation"))
	return sb.String()
}

func expiryWords(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	m := int(math.Ceil(d.Minutes()))
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

func statsText(st orders.Stats) string {
	return fmt.Sprintf("%s\n\nDeposit instructions issued: %d\nConfirmed by users: %d\nDegraded quotes: %d\nUnique users: %d",
		format.Bold("Stats"), st.Total, st.Acknowledged, st.Degraded, st.Users)
}
