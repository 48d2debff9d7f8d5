package swap

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/swapstream/internal/catalog"
)

func newWizard(t *testing.T, opts Options) (*Wizard, *MockRateLookup) {
	t.Helper()
	ctrl := gomock.NewController(t)
	rates := NewMockRateLookup(ctrl)
	return NewWizard(rates, catalog.Default(nil), opts), rates
}

func TestEndToEndBTCToETH(t *testing.T) {
	ctx := context.Background()
	w, rates := newWizard(t, Options{})
	rates.EXPECT().LookupRate(gomock.Any(), "BTC", "ETH").Return(20.0, nil)

	s, eff := w.Step(ctx, Session{}, Start())
	assert.Equal(t, StateSelectFrom, s.State)
	assert.Equal(t, OutcomeAskFrom, eff.Outcome)

	s, eff = w.Step(ctx, s, ChooseCoin("BTC"))
	assert.Equal(t, StateSelectTo, s.State)
	assert.Equal(t, OutcomeAskTo, eff.Outcome)
	assert.Equal(t, "BTC", eff.Exclude)

	s, eff = w.Step(ctx, s, ChooseCoin("ETH"))
	assert.Equal(t, StateEnterAmount, s.State)
	assert.Equal(t, OutcomeAskAmount, eff.Outcome)

	s, eff = w.Step(ctx, s, Text("0.05"))
	require.Equal(t, StateEnterWallet, s.State)
	assert.Equal(t, OutcomeQuoted, eff.Outcome)
	assert.InDelta(t, 1.0, s.Received, 1e-12)
	assert.Equal(t, "ETH", eff.Quote.To)
	assert.False(t, eff.Quote.Degraded)

	s, eff = w.Step(ctx, s, Text("  0xWallet  "))
	assert.Equal(t, Session{}, s)
	assert.Equal(t, OutcomeDeposit, eff.Outcome)
	assert.Equal(t, "0xWallet", eff.Wallet)
	assert.Equal(t, "bc1qvxzvx0hdcahwys5v4yuqh5er9myuy4hcj3yudl", eff.DepositAddress)
	assert.InDelta(t, 0.05, eff.Quote.Amount, 1e-12)
}

func TestAmountValidation(t *testing.T) {
	ctx := context.Background()
	start := Session{State: StateEnterAmount, From: "SOL", To: "USDT"}

	for _, in := range []string{"abc", "0", "-1", "", "NaN", "Inf", "-inf", "1e400", "1,5"} {
		w, _ := newWizard(t, Options{})
		s, eff := w.Step(ctx, start, Text(in))
		assert.Equal(t, start, s, "input %q", in)
		assert.Equal(t, OutcomeInvalidAmount, eff.Outcome, "input %q", in)
	}

	for _, in := range []string{"0.01", "1", " 2.5 ", "1e-3", "100000"} {
		w, rates := newWizard(t, Options{})
		rates.EXPECT().LookupRate(gomock.Any(), "SOL", "USDT").Return(150.0, nil)
		s, eff := w.Step(ctx, start, Text(in))
		assert.Equal(t, StateEnterWallet, s.State, "input %q", in)
		assert.Equal(t, OutcomeQuoted, eff.Outcome)
		assert.InDelta(t, s.Amount*150.0, s.Received, 1e-9)
	}

	overflow := Session{State: StateEnterAmount, From: "USDT", To: "BTC"}
	w, rates := newWizard(t, Options{})
	rates.EXPECT().LookupRate(gomock.Any(), "USDT", "BTC").Return(20.0, nil)
	s, eff := w.Step(ctx, overflow, Text("1e308"))
	assert.Equal(t, overflow, s)
	assert.Equal(t, OutcomeInvalidAmount, eff.Outcome)
}

func TestDegradedQuoteAdvances(t *testing.T) {
	w, rates := newWizard(t, Options{})
	rates.EXPECT().LookupRate(gomock.Any(), "BTC", "XMR").Return(0.0, errors.New("timeout"))

	s, eff := w.Step(context.Background(), Session{State: StateEnterAmount, From: "BTC", To: "XMR"}, Text("1"))
	assert.Equal(t, StateEnterWallet, s.State)
	assert.Equal(t, OutcomeQuoted, eff.Outcome)
	assert.Zero(t, s.Rate)
	assert.Zero(t, s.Received)
	assert.True(t, s.QuoteDegraded)
	assert.Error(t, eff.Err)
}

func TestStrictQuotesStayOnAmount(t *testing.T) {
	w, rates := newWizard(t, Options{StrictQuotes: true})
	rates.EXPECT().LookupRate(gomock.Any(), "BTC", "XMR").Return(0.0, errors.New("down"))

	start := Session{State: StateEnterAmount, From: "BTC", To: "XMR"}
	s, eff := w.Step(context.Background(), start, Text("1"))
	assert.Equal(t, start, s)
	assert.Equal(t, OutcomeQuoteUnavailable, eff.Outcome)
}

func TestCancelFromEveryState(t *testing.T) {
	sessions := []Session{
		{State: StateSelectFrom},
		{State: StateSelectTo, From: "BTC"},
		{State: StateEnterAmount, From: "BTC", To: "ETH"},
		{State: StateEnterWallet, From: "BTC", To: "ETH", Amount: 1, Rate: 20, Received: 20},
	}
	for _, start := range sessions {
		w, _ := newWizard(t, Options{})
		s, eff := w.Step(context.Background(), start, Cancel())
		assert.Equal(t, Session{}, s, "from %s", start.State)
		assert.False(t, s.Active())
		assert.Equal(t, OutcomeCancelled, eff.Outcome)
	}
}

func TestPairShortcut(t *testing.T) {
	w, rates := newWizard(t, Options{})
	s, eff := w.Step(context.Background(), Session{State: StateSelectTo, From: "SOL"}, ChoosePair("xmr", "btc"))
	assert.Equal(t, Session{State: StateEnterAmount, From: "XMR", To: "BTC"}, s)
	assert.Equal(t, OutcomeAskAmount, eff.Outcome)

	_, eff = w.Step(context.Background(), Session{}, ChoosePair("XMR", "DOGE"))
	assert.Equal(t, OutcomeUseOptions, eff.Outcome)

	// same coin is reachable through the shortcut and quotes at 1.0
	rates.EXPECT().LookupRate(gomock.Any(), "XMR", "XMR").Return(1.0, nil)
	s, _ = w.Step(context.Background(), Session{}, ChoosePair("XMR", "XMR"))
	s, _ = w.Step(context.Background(), s, Text("3"))
	assert.Equal(t, 3.0, s.Received)
}

func TestCoinChoiceRules(t *testing.T) {
	ctx := context.Background()
	w, _ := newWizard(t, Options{})

	from := Session{State: StateSelectTo, From: "BTC"}
	s, eff := w.Step(ctx, from, ChooseCoin("BTC"))
	assert.Equal(t, from, s)
	assert.Equal(t, OutcomeUseOptions, eff.Outcome)

	s, eff = w.Step(ctx, Session{State: StateSelectFrom}, ChooseCoin("DOGE"))
	assert.Equal(t, StateSelectFrom, s.State)
	assert.Equal(t, OutcomeUseOptions, eff.Outcome)

	amount := Session{State: StateEnterAmount, From: "BTC", To: "ETH"}
	s, eff = w.Step(ctx, amount, ChooseCoin("SOL"))
	assert.Equal(t, amount, s)
	assert.Equal(t, OutcomeIgnored, eff.Outcome)

	_, eff = w.Step(ctx, Session{}, ChooseCoin("SOL"))
	assert.Equal(t, OutcomeIgnored, eff.Outcome)
}

func TestTextOutsideTextSteps(t *testing.T) {
	w, _ := newWizard(t, Options{})
	for _, start := range []Session{{}, {State: StateSelectFrom}, {State: StateSelectTo, From: "ETH"}} {
		s, eff := w.Step(context.Background(), start, Text("hello"))
		assert.Equal(t, start, s)
		assert.Equal(t, OutcomeUseOptions, eff.Outcome)
	}
}

func TestEmptyWalletAccepted(t *testing.T) {
	w, _ := newWizard(t, Options{})
	s, eff := w.Step(context.Background(), Session{State: StateEnterWallet, From: "ETH", To: "SOL", Amount: 1}, Text("   "))
	assert.False(t, s.Active())
	assert.Equal(t, OutcomeDeposit, eff.Outcome)
	assert.Empty(t, eff.Wallet)
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("0.05")
	require.NoError(t, err)
	assert.Equal(t, 0.05, v)

	_, err = ParseAmount("+Inf")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = ParseAmount(" ")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	for _, in := range []string{"0x1p4", "0X10", "0x1_0p0", "1_000"} {
		_, err = ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
	assert.False(t, math.IsNaN(v))
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "quoted", OutcomeQuoted.String())
	assert.Equal(t, "unknown", Outcome(99).String())
	assert.Equal(t, "cancel", EventCancel.String())
}
