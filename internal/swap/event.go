package swap

// EventKind enumerates inputs the wizard reacts to.
type EventKind int

const (
	// EventStart opens the wizard at coin selection.
	EventStart EventKind = iota + 1
	// EventChoosePair picks both coins at once.
	EventChoosePair
	// EventChooseCoin picks the coin for the current selection step.
	EventChooseCoin
	// EventText is free text typed by the user.
	EventText
	// EventCancel leaves the wizard from any step.
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventChoosePair:
		return "choose_pair"
	case EventChooseCoin:
		return "choose_coin"
	case EventText:
		return "text"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one user input.
type Event struct {
	Kind EventKind
	// Coin is set for EventChooseCoin.
	Coin string
	// From and To are set for EventChoosePair.
	From string
	To   string
	// Text is set for EventText.
	Text string
}

// Start returns an EventStart.
func Start() Event { return Event{Kind: EventStart} }

// ChoosePair returns an EventChoosePair.
func ChoosePair(from, to string) Event { return Event{Kind: EventChoosePair, From: from, To: to} }

// ChooseCoin returns an EventChooseCoin.
func ChooseCoin(coin string) Event { return Event{Kind: EventChooseCoin, Coin: coin} }

// Text returns an EventText.
func Text(text string) Event { return Event{Kind: EventText, Text: text} }

// Cancel returns an EventCancel.
func Cancel() Event { return Event{Kind: EventCancel} }

// Outcome tells the presenter which screen a transition produced.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeAskFrom
	OutcomeAskTo
	OutcomeAskAmount
	OutcomeQuoted
	OutcomeInvalidAmount
	OutcomeQuoteUnavailable
	OutcomeDeposit
	OutcomeCancelled
	OutcomeUseOptions
)

var outcomeNames = [...]string{
	OutcomeIgnored:          "ignored",
	OutcomeAskFrom:          "ask_from",
	OutcomeAskTo:            "ask_to",
	OutcomeAskAmount:        "ask_amount",
	OutcomeQuoted:           "quoted",
	OutcomeInvalidAmount:    "invalid_amount",
	OutcomeQuoteUnavailable: "quote_unavailable",
	OutcomeDeposit:          "deposit",
	OutcomeCancelled:        "cancelled",
	OutcomeUseOptions:       "use_options",
}

func (o Outcome) String() string {
	if int(o) >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Effect is the single presentation update a transition asks for.
type Effect struct {
	Outcome Outcome
	From    string
	To      string
	// Exclude is the coin left out of the AskTo keyboard.
	Exclude string
	// Quote is set for OutcomeQuoted and OutcomeDeposit.
	Quote Quote
	// Wallet and DepositAddress are set for OutcomeDeposit.
	Wallet         string
	DepositAddress string
	// Err carries the lookup failure behind a degraded or unavailable quote.
	Err error
}
