package domain

// ConversationTurn is one append-only chat log entry. Turns are never
// mutated after insert; ordering is insertion order.
type ConversationTurn struct {
	Channel         string
	UserMessage     string
	BotResponse     string
	ResponseSeconds float64
	SearchPerformed bool
	ResultCount     int
}

// Exchange is a single user/bot pair as returned by Recent.
type Exchange struct {
	UserMessage string
	BotResponse string
}
