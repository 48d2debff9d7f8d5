// Package swap implements the swap wizard as an explicit state machine.
//
// The wizard is stateless: callers load a Session, feed it one Event through
// Wizard.Step and persist the returned Session.
package swap

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// State is the wizard step a session is in. The zero value is idle.
type State string

const (
	StateIdle        State = ""
	StateSelectFrom  State = "select_from"
	StateSelectTo    State = "select_to"
	StateEnterAmount State = "enter_amount"
	StateEnterWallet State = "enter_wallet"
)

// Session is the per-user wizard data.
type Session struct {
	State    State   `json:"state"`
	From     string  `json:"from,omitempty"`
	To       string  `json:"to,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
	Received float64 `json:"received,omitempty"`
	// QuoteDegraded marks a quote frozen after a failed rate lookup.
	QuoteDegraded bool   `json:"quote_degraded,omitempty"`
	Wallet        string `json:"wallet,omitempty"`
}

// Active reports whether the session is somewhere inside the wizard.
func (s Session) Active() bool { return s.State != StateIdle }

// Quote returns the values frozen when the amount was accepted.
func (s Session) Quote() Quote {
	return Quote{From: s.From, To: s.To, Amount: s.Amount, Rate: s.Rate, Received: s.Received, Degraded: s.QuoteDegraded}
}

// Quote is the amount to receive for a given amount, pair and rate.
type Quote struct {
	From     string
	To       string
	Amount   float64
	Rate     float64
	Received float64
	Degraded bool
}

// ErrInvalidAmount reports text that is not a positive finite number.
var ErrInvalidAmount = errors.New("swap: amount must be a positive number")

// ParseAmount accepts positive finite decimal numbers. Hex floats and
// underscore digit separators are rejected.
func ParseAmount(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, "xX_") {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
