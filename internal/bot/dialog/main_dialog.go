package dialog

import (
	"context"

	"github.com/speedyfix/auto-garage/internal/bot/cards"
	"github.com/speedyfix/auto-garage/internal/bot/recognizer"
	"github.com/speedyfix/auto-garage/internal/models"
)

const (
	msgWhatElse    = "What else can I do for you?"
	msgOpeningHrs  = "Here are our opening hours."
	msgRepairIntro = "These are the repairs we offer."
	msgFallback    = "Sorry, I didn't get that. You can ask me to book an appointment, or ask about our opening hours and repair types."
)

// Session is one conversation's state, serialized into the session store
// between turns.
type Session struct {
	ID      string `json:"id"`
	Greeted bool   `json:"greeted"`
	Flow    *Flow  `json:"flow,omitempty"`
}

// Dialog routes each incoming message: an active booking flow consumes the
// message directly, otherwise the recognizer picks an intent.
type Dialog struct {
	store      Store
	recognizer recognizer.Recognizer
}

func New(store Store, rec recognizer.Recognizer) *Dialog {
	return &Dialog{store: store, recognizer: rec}
}

// Handle processes one user message and mutates the session in place. The
// caller persists the session afterwards.
func (d *Dialog) Handle(ctx context.Context, session *Session, text string) []Reply {
	var replies []Reply

	if !session.Greeted {
		session.Greeted = true
		replies = append(replies, CardReply(cards.Welcome()))
	}

	if session.Flow != nil {
		replies = append(replies, session.Flow.Advance(ctx, d.store, text)...)
		if session.Flow.Done() {
			session.Flow = nil
			replies = append(replies, Text(msgWhatElse))
		}
		return replies
	}

	result, err := d.recognizer.Recognize(ctx, text)
	if err != nil {
		result = recognizer.Result{TopIntent: recognizer.IntentNone}
	}

	switch result.TopIntent {

	case recognizer.IntentMakeAppointment:
		session.Flow = NewFlow()
		replies = append(replies, session.Flow.Begin(ctx, d.store, customerFromEntities(result.Entities))...)
		if session.Flow.Done() {
			session.Flow = nil
			replies = append(replies, Text(msgWhatElse))
		}

	case recognizer.IntentOpeningHours:
		replies = append(replies,
			Text(msgOpeningHrs),
			CardReply(cards.OpeningHours()),
			Text(msgWhatElse),
		)

	case recognizer.IntentRepairType:
		repairTypes, err := d.store.RepairTypes(ctx)
		if err != nil {
			replies = append(replies, Text(msgFallback))
			break
		}
		replies = append(replies,
			Text(msgRepairIntro),
			CardReply(cards.RepairTypeCatalog(repairTypes)),
			Text(msgWhatElse),
		)

	default:
		replies = append(replies, Text(msgFallback))
	}

	return replies
}

// customerFromEntities pre-fills the booking form from recognized entities,
// so the flow only asks for what the user didn't already say.
func customerFromEntities(e recognizer.Entities) models.Customer {
	return models.Customer{
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Mail:         e.Mail,
		PhoneNumber:  e.PhoneNumber,
		LicensePlate: e.LicensePlate,
	}
}
