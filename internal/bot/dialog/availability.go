package dialog

import "github.com/speedyfix/auto-garage/internal/models"

// AvailableSlots filters the slot catalog down to slots with no appointment
// on the given date ("2006-01-02"). Slots recur daily, so a slot is taken
// only when one of its appointments falls on that exact date.
//
// This is a read-then-decide check with no lock; two conversations can both
// see a slot as free and both book it. The re-fetch before the final insert
// does not close that race.
func AvailableSlots(slots []models.TimeSlot, date string) []models.TimeSlot {
	var available []models.TimeSlot
	for _, slot := range slots {
		taken := false
		for _, ap := range slot.Appointments {
			if ap.AppointmentDate == date {
				taken = true
				break
			}
		}
		if !taken {
			available = append(available, slot)
		}
	}
	return available
}
