package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// PayloadInt parses callback payload as int.
func PayloadInt(c tele.Context) (int, error) {
	return strconv.Atoi(strings.TrimSpace(CallbackPayload(c)))
}

// PayloadPair splits a payload such as "BTC_XMR" into its two halves.
func PayloadPair(c tele.Context, sep string) (string, string, error) {
	p := CallbackPayload(c)
	a, b, ok := strings.Cut(p, sep)
	if !ok || a == "" || b == "" {
		return "", "", strconv.ErrSyntax
	}
	return a, b, nil
}
