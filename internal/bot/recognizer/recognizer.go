// Package recognizer labels raw user text with one of the bot's intents and
// extracts any named entities it carries. The dialog treats recognizers as a
// black box; two implementations exist, a CLU endpoint client and an offline
// keyword matcher.
package recognizer

import "context"

type Intent int

const (
	IntentNone Intent = iota
	IntentMakeAppointment
	IntentOpeningHours
	IntentRepairType
)

func (i Intent) String() string {
	switch i {
	case IntentMakeAppointment:
		return "MakeAppointment"
	case IntentOpeningHours:
		return "OpeningHours"
	case IntentRepairType:
		return "RepairType"
	case IntentNone:
		return "None"
	}
	return "None"
}

func ParseIntent(s string) Intent {
	switch s {
	case "MakeAppointment":
		return IntentMakeAppointment
	case "OpeningHours":
		return IntentOpeningHours
	case "RepairType":
		return IntentRepairType
	}
	return IntentNone
}

// Entities are free strings; absence is the empty string. The dialog
// validates them before use.
type Entities struct {
	FirstName       string
	LastName        string
	LicensePlate    string
	Mail            string
	PhoneNumber     string
	RepairType      string
	TimeSlot        string
	AppointmentDate string
}

type Result struct {
	TopIntent Intent
	Score     float64
	Entities  Entities
}

type Recognizer interface {
	Recognize(ctx context.Context, text string) (Result, error)
}
