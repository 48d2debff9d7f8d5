// Package format renders text fragments for Telegram's HTML parse mode.
package format

import (
	"html"
	"strconv"
)

// Escape makes arbitrary user text safe inside an HTML-mode message.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Bold wraps escaped text in <b>.
func Bold(s string) string { return "<b>" + Escape(s) + "</b>" }

// Italic wraps escaped text in <i>.
func Italic(s string) string { return "<i>" + Escape(s) + "</i>" }

// Code wraps escaped text in <code> so clients render it monospaced and copyable.
func Code(s string) string { return "<code>" + Escape(s) + "</code>" }

// Fixed formats v with exactly prec decimals.
func Fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// Plain formats v in the shortest form that round-trips, as the user typed it.
func Plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
