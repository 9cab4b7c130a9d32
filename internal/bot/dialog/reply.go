package dialog

import "github.com/speedyfix/auto-garage/internal/bot/cards"

type ReplyKind string

const (
	KindText   ReplyKind = "text"
	KindChoice ReplyKind = "choice"
	KindCard   ReplyKind = "card"
)

// Reply is one outbound message. A choice reply expects the next user input
// to be exactly one of Choices.
type Reply struct {
	Kind    ReplyKind   `json:"type"`
	Text    string      `json:"text,omitempty"`
	Choices []string    `json:"choices,omitempty"`
	Card    *cards.Card `json:"card,omitempty"`
}

func Text(text string) Reply {
	return Reply{Kind: KindText, Text: text}
}

func Choice(text string, choices ...string) Reply {
	return Reply{Kind: KindChoice, Text: text, Choices: choices}
}

func CardReply(card cards.Card) Reply {
	return Reply{Kind: KindCard, Card: &card}
}
