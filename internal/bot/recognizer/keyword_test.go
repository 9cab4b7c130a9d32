package recognizer

import (
	"context"
	"testing"
)

func TestKeywordIntents(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"I'd like to book an appointment", IntentMakeAppointment},
		{"can I schedule a repair", IntentMakeAppointment},
		{"what are your opening hours", IntentOpeningHours},
		{"are you open on sunday", IntentOpeningHours},
		{"what repairs do you offer", IntentRepairType},
		{"which services do you have", IntentRepairType},
		{"hello there", IntentNone},
		{"", IntentNone},
	}

	k := NewKeyword()
	for _, tt := range tests {
		result, err := k.Recognize(context.Background(), tt.text)
		if err != nil {
			t.Fatalf("Recognize(%q): %v", tt.text, err)
		}
		if result.TopIntent != tt.want {
			t.Errorf("Recognize(%q) = %v, want %v", tt.text, result.TopIntent, tt.want)
		}
	}
}

func TestKeywordExtractsLicensePlate(t *testing.T) {
	k := NewKeyword()

	result, err := k.Recognize(context.Background(), "book me in for 1-ABC-123 please")
	if err != nil {
		t.Fatal(err)
	}
	if result.TopIntent != IntentMakeAppointment {
		t.Errorf("intent = %v, want MakeAppointment", result.TopIntent)
	}
	if result.Entities.LicensePlate != "1-ABC-123" {
		t.Errorf("plate = %q, want 1-ABC-123", result.Entities.LicensePlate)
	}
}

func TestParseIntentRoundTrip(t *testing.T) {
	for _, intent := range []Intent{IntentNone, IntentMakeAppointment, IntentOpeningHours, IntentRepairType} {
		if got := ParseIntent(intent.String()); got != intent {
			t.Errorf("ParseIntent(%q) = %v, want %v", intent.String(), got, intent)
		}
	}
	if got := ParseIntent("Gibberish"); got != IntentNone {
		t.Errorf("unknown intent should map to None, got %v", got)
	}
}
