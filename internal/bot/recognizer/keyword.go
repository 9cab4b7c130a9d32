package recognizer

import (
	"context"
	"regexp"
	"strings"
)

var plateEntityRe = regexp.MustCompile(`\d-[a-zA-Z]{3}-\d{3}`)

// Keyword is the offline fallback used when no CLU endpoint is configured.
// It only has to be good enough for routing the three top-level intents.
type Keyword struct{}

func NewKeyword() *Keyword {
	return &Keyword{}
}

func (k *Keyword) Recognize(_ context.Context, text string) (Result, error) {
	lower := strings.ToLower(text)

	result := Result{TopIntent: IntentNone, Score: 1}

	switch {
	case containsAny(lower, "appointment", "book", "schedule"):
		result.TopIntent = IntentMakeAppointment
	case containsAny(lower, "opening", "hours", "open", "closed"):
		result.TopIntent = IntentOpeningHours
	case containsAny(lower, "repair type", "repairs", "repair", "services", "offer"):
		result.TopIntent = IntentRepairType
	}

	if plate := plateEntityRe.FindString(text); plate != "" {
		result.Entities.LicensePlate = plate
	}

	return result, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
