package dialog

import (
	"testing"

	"github.com/speedyfix/auto-garage/internal/models"
)

func TestAvailableSlots(t *testing.T) {
	slots := []models.TimeSlot{
		{ID: 1, StartTime: "09:00"},
		{ID: 2, StartTime: "09:30", Appointments: []models.Appointment{
			{AppointmentDate: "2024-10-22"},
		}},
		{ID: 3, StartTime: "10:00", Appointments: []models.Appointment{
			{AppointmentDate: "2024-10-23"},
		}},
	}

	got := AvailableSlots(slots, "2024-10-22")

	if len(got) != 2 {
		t.Fatalf("available = %d, want 2", len(got))
	}
	if got[0].StartTime != "09:00" || got[1].StartTime != "10:00" {
		t.Errorf("unexpected slots: %+v", got)
	}
}

func TestAvailableSlotsAllTaken(t *testing.T) {
	slots := []models.TimeSlot{
		{ID: 1, StartTime: "09:00", Appointments: []models.Appointment{{AppointmentDate: "2024-10-22"}}},
	}

	if got := AvailableSlots(slots, "2024-10-22"); len(got) != 0 {
		t.Errorf("expected no slots, got %+v", got)
	}
}

func TestAvailableSlotsEmptyCatalog(t *testing.T) {
	if got := AvailableSlots(nil, "2024-10-22"); len(got) != 0 {
		t.Errorf("expected no slots, got %+v", got)
	}
}
