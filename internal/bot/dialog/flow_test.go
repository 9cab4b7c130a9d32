package dialog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/speedyfix/auto-garage/internal/models"
)

type fakeStore struct {
	customers    []models.Customer
	repairTypes  []models.RepairType
	slots        []models.TimeSlot
	appointments []models.Appointment

	nextCustomerID    uint
	nextAppointmentID uint

	insertCustomerErr    error
	insertAppointmentErr error
	repairTypesErr       error
	slotsErr             error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: []models.Customer{
			{ID: 1, FirstName: "John", LastName: "Doe", Mail: "john.doe@example.com", PhoneNumber: "0465 05 32 63", LicensePlate: "1-ABC-123"},
		},
		repairTypes: []models.RepairType{
			{ID: 1, RepairName: "Oil Change"},
			{ID: 2, RepairName: "Brake Repair"},
		},
		slots: []models.TimeSlot{
			{ID: 1, StartTime: "09:00"},
			{ID: 2, StartTime: "09:30", Appointments: []models.Appointment{
				{ID: 99, AppointmentDate: "2024-10-22", TimeSlotID: 2},
			}},
		},
		nextCustomerID:    10,
		nextAppointmentID: 100,
	}
}

func (s *fakeStore) CustomerByLicensePlate(_ context.Context, plate string) (*models.Customer, error) {
	for i := range s.customers {
		if strings.EqualFold(s.customers[i].LicensePlate, plate) {
			c := s.customers[i]
			return &c, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *fakeStore) InsertCustomer(_ context.Context, customer *models.Customer) (*models.Customer, error) {
	if s.insertCustomerErr != nil {
		return nil, s.insertCustomerErr
	}
	c := *customer
	c.ID = s.nextCustomerID
	s.nextCustomerID++
	s.customers = append(s.customers, c)
	return &c, nil
}

func (s *fakeStore) RepairTypes(_ context.Context) ([]models.RepairType, error) {
	if s.repairTypesErr != nil {
		return nil, s.repairTypesErr
	}
	return s.repairTypes, nil
}

func (s *fakeStore) RepairTypeByID(_ context.Context, id uint) (*models.RepairType, error) {
	for i := range s.repairTypes {
		if s.repairTypes[i].ID == id {
			return &s.repairTypes[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (s *fakeStore) TimeSlots(_ context.Context) ([]models.TimeSlot, error) {
	if s.slotsErr != nil {
		return nil, s.slotsErr
	}
	return s.slots, nil
}

func (s *fakeStore) TimeSlotByStartTime(_ context.Context, startTime string) (*models.TimeSlot, error) {
	for i := range s.slots {
		if s.slots[i].StartTime == startTime {
			return &s.slots[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (s *fakeStore) InsertAppointment(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if s.insertAppointmentErr != nil {
		return nil, s.insertAppointmentErr
	}
	a := *appointment
	a.ID = s.nextAppointmentID
	s.nextAppointmentID++
	s.appointments = append(s.appointments, a)
	for i := range s.slots {
		if s.slots[i].ID == a.TimeSlotID {
			s.slots[i].Appointments = append(s.slots[i].Appointments, a)
		}
	}
	return &a, nil
}

func lastText(replies []Reply) string {
	for i := len(replies) - 1; i >= 0; i-- {
		if replies[i].Kind == KindText || replies[i].Kind == KindChoice {
			return replies[i].Text
		}
	}
	return ""
}

func allText(replies []Reply) string {
	var parts []string
	for _, r := range replies {
		if r.Text != "" {
			parts = append(parts, r.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestFlowBooksExistingCustomer(t *testing.T) {
	store := newFakeStore()
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})

	replies := flow.Advance(ctx, store, "1-ABC-123")
	if flow.State != StateConfirmExisting {
		t.Fatalf("state = %v, want StateConfirmExisting", flow.State)
	}
	if !strings.Contains(allText(replies), "We found your details") {
		t.Errorf("expected found-details prompt, got %q", allText(replies))
	}

	flow.Advance(ctx, store, ChoiceConfirm)
	if flow.State != StateRepairType {
		t.Fatalf("state = %v, want StateRepairType", flow.State)
	}

	flow.Advance(ctx, store, "Oil Change")
	flow.Advance(ctx, store, "10/23/2024")
	if flow.State != StateTimeSlot {
		t.Fatalf("state = %v, want StateTimeSlot", flow.State)
	}

	flow.Advance(ctx, store, "09:00")
	if flow.State != StateConfirmAppointment {
		t.Fatalf("state = %v, want StateConfirmAppointment", flow.State)
	}

	replies = flow.Advance(ctx, store, ChoiceConfirm)
	if !flow.Done() || flow.Outcome != OutcomeBooked {
		t.Fatalf("outcome = %q, want booked", flow.Outcome)
	}
	if !strings.Contains(allText(replies), "has been booked") {
		t.Errorf("expected booking confirmation, got %q", allText(replies))
	}

	if len(store.appointments) != 1 {
		t.Fatalf("appointments = %d, want 1", len(store.appointments))
	}
	got := store.appointments[0]
	if got.CustomerID != 1 || got.TimeSlotID != 1 || got.RepairTypeID != 1 || got.AppointmentDate != "2024-10-23" {
		t.Errorf("unexpected appointment: %+v", got)
	}
}

func TestFlowRegistersNewCustomer(t *testing.T) {
	store := newFakeStore()
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})

	replies := flow.Advance(ctx, store, "2-XYZ-999")
	if !strings.Contains(allText(replies), "We couldn't find your details") {
		t.Fatalf("expected registration branch, got %q", allText(replies))
	}
	if flow.State != StateFirstName {
		t.Fatalf("state = %v, want StateFirstName", flow.State)
	}

	flow.Advance(ctx, store, "Ada")
	flow.Advance(ctx, store, "Lovelace")
	flow.Advance(ctx, store, "ada@example.com")
	flow.Advance(ctx, store, "0465 05 32 63")
	if flow.State != StateConfirmNew {
		t.Fatalf("state = %v, want StateConfirmNew", flow.State)
	}

	replies = flow.Advance(ctx, store, ChoiceConfirm)
	if !strings.Contains(allText(replies), "has been saved") {
		t.Errorf("expected save confirmation, got %q", allText(replies))
	}

	found, err := store.CustomerByLicensePlate(ctx, "2-XYZ-999")
	if err != nil {
		t.Fatalf("customer was not persisted: %v", err)
	}
	if found.FirstName != "Ada" || found.Mail != "ada@example.com" {
		t.Errorf("unexpected customer: %+v", found)
	}

	if flow.State != StateRepairType {
		t.Fatalf("state = %v, want StateRepairType after registration", flow.State)
	}

	// Carry the same session through to a booked appointment.
	flow.Advance(ctx, store, "Oil Change")
	flow.Advance(ctx, store, "10/23/2024")
	flow.Advance(ctx, store, "09:00")
	flow.Advance(ctx, store, ChoiceConfirm)

	if flow.Outcome != OutcomeBooked {
		t.Fatalf("outcome = %q, want booked", flow.Outcome)
	}
	if len(store.appointments) != 1 {
		t.Fatalf("appointments = %d, want 1", len(store.appointments))
	}
	if store.appointments[0].CustomerID != found.ID {
		t.Errorf("appointment customer = %d, want %d", store.appointments[0].CustomerID, found.ID)
	}
}

func TestFlowSkipsSeededFields(t *testing.T) {
	store := newFakeStore()
	flow := NewFlow()
	ctx := context.Background()

	seed := models.Customer{FirstName: "Grace", LicensePlate: "3-GHI-777"}
	replies := flow.Begin(ctx, store, seed)

	// Valid seeded plate skips the plate prompt; the unknown plate lands in
	// registration where the seeded first name is not asked again.
	if flow.State != StateLastName {
		t.Fatalf("state = %v, want StateLastName", flow.State)
	}
	if strings.Contains(allText(replies), "first name") {
		t.Errorf("should not re-ask seeded first name: %q", allText(replies))
	}
}

func TestFlowInvalidPlateRepromptsInPlace(t *testing.T) {
	store := newFakeStore()
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})
	replies := flow.Advance(ctx, store, "ABC-123")

	if flow.State != StateLicensePlate {
		t.Fatalf("state = %v, want StateLicensePlate", flow.State)
	}
	if !strings.Contains(lastText(replies), "not valid") {
		t.Errorf("expected validation message, got %q", lastText(replies))
	}
}

func TestFlowRestartsOnUnknownRepairType(t *testing.T) {
	store := newFakeStore()
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})
	flow.Advance(ctx, store, "1-ABC-123")
	flow.Advance(ctx, store, ChoiceConfirm)

	replies := flow.Advance(ctx, store, "Flux Capacitor Replacement")

	if flow.State != StateLicensePlate {
		t.Fatalf("state = %v, want StateLicensePlate after restart", flow.State)
	}
	if flow.Booking.Customer.LicensePlate != "" {
		t.Errorf("restart should drop collected data, kept plate %q", flow.Booking.Customer.LicensePlate)
	}
	if !strings.Contains(allText(replies), "What is your license plate number?") {
		t.Errorf("expected plate prompt after restart, got %q", allText(replies))
	}
}

func TestFlowRestartsOnInvalidDate(t *testing.T) {
	store := newFakeStore()
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})
	flow.Advance(ctx, store, "1-ABC-123")
	flow.Advance(ctx, store, ChoiceConfirm)
	flow.Advance(ctx, store, "Oil Change")

	replies := flow.Advance(ctx, store, "next tuesday")

	if flow.State != StateLicensePlate {
		t.Fatalf("state = %v, want StateLicensePlate after restart", flow.State)
	}
	if !strings.Contains(allText(replies), "MM/DD/YYYY") {
		t.Errorf("expected date format hint, got %q", allText(replies))
	}
}

func TestFlowRestartsOnStaleSlot(t *testing.T) {
	store := newFakeStore()
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})
	flow.Advance(ctx, store, "1-ABC-123")
	flow.Advance(ctx, store, ChoiceConfirm)
	flow.Advance(ctx, store, "Oil Change")
	flow.Advance(ctx, store, "10/22/2024")

	// 09:30 is booked on 2024-10-22 and was never offered.
	replies := flow.Advance(ctx, store, "09:30")

	if flow.State != StateLicensePlate {
		t.Fatalf("state = %v, want StateLicensePlate after restart", flow.State)
	}
	if !strings.Contains(allText(replies), "no longer available") {
		t.Errorf("expected stale-slot message, got %q", allText(replies))
	}
	if len(store.appointments) != 0 {
		t.Errorf("no appointment should have been created")
	}
}

func TestFlowNoSlotsAvailable(t *testing.T) {
	store := newFakeStore()
	// Book every slot on the target date.
	for i := range store.slots {
		store.slots[i].Appointments = append(store.slots[i].Appointments, models.Appointment{
			AppointmentDate: "2024-11-05", TimeSlotID: store.slots[i].ID,
		})
	}
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})
	flow.Advance(ctx, store, "1-ABC-123")
	flow.Advance(ctx, store, ChoiceConfirm)
	flow.Advance(ctx, store, "Oil Change")
	replies := flow.Advance(ctx, store, "11/05/2024")

	if !flow.Done() || flow.Outcome != OutcomeNoSlots {
		t.Fatalf("outcome = %q, want no_slots", flow.Outcome)
	}
	if !strings.Contains(lastText(replies), "No available time slots") {
		t.Errorf("expected no-slots message, got %q", lastText(replies))
	}
}

func TestFlowCancelAtEachConfirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("existing customer", func(t *testing.T) {
		store := newFakeStore()
		flow := NewFlow()
		flow.Begin(ctx, store, models.Customer{})
		flow.Advance(ctx, store, "1-ABC-123")
		flow.Advance(ctx, store, ChoiceCancel)

		if !flow.Done() || flow.Outcome != OutcomeCanceled {
			t.Fatalf("outcome = %q, want canceled", flow.Outcome)
		}
		if len(store.appointments) != 0 {
			t.Errorf("no appointment should exist after cancel")
		}
	})

	t.Run("new customer", func(t *testing.T) {
		store := newFakeStore()
		flow := NewFlow()
		flow.Begin(ctx, store, models.Customer{})
		flow.Advance(ctx, store, "2-XYZ-999")
		flow.Advance(ctx, store, "Ada")
		flow.Advance(ctx, store, "Lovelace")
		flow.Advance(ctx, store, "ada@example.com")
		flow.Advance(ctx, store, "0465 05 32 63")
		flow.Advance(ctx, store, ChoiceCancel)

		if !flow.Done() || flow.Outcome != OutcomeCanceled {
			t.Fatalf("outcome = %q, want canceled", flow.Outcome)
		}
		if _, err := store.CustomerByLicensePlate(ctx, "2-XYZ-999"); err == nil {
			t.Errorf("customer should not be persisted after cancel")
		}
	})

	t.Run("appointment summary", func(t *testing.T) {
		store := newFakeStore()
		flow := NewFlow()
		flow.Begin(ctx, store, models.Customer{})
		flow.Advance(ctx, store, "1-ABC-123")
		flow.Advance(ctx, store, ChoiceConfirm)
		flow.Advance(ctx, store, "Oil Change")
		flow.Advance(ctx, store, "10/23/2024")
		flow.Advance(ctx, store, "09:00")
		flow.Advance(ctx, store, ChoiceCancel)

		if !flow.Done() || flow.Outcome != OutcomeCanceled {
			t.Fatalf("outcome = %q, want canceled", flow.Outcome)
		}
		if len(store.appointments) != 0 {
			t.Errorf("no appointment should exist after cancel")
		}
	})
}

func TestFlowConfirmationRepromptsOnOtherInput(t *testing.T) {
	store := newFakeStore()
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})
	flow.Advance(ctx, store, "1-ABC-123")
	replies := flow.Advance(ctx, store, "maybe")

	// Unlike catalog and date mismatches, a stray answer to a yes/no prompt
	// re-asks in place instead of restarting.
	if flow.State != StateConfirmExisting {
		t.Fatalf("state = %v, want StateConfirmExisting", flow.State)
	}
	if len(replies) != 1 || replies[0].Kind != KindChoice {
		t.Errorf("expected a single choice re-prompt, got %+v", replies)
	}
}

func TestFlowCustomerPersistsWhenBookingFails(t *testing.T) {
	store := newFakeStore()
	store.insertAppointmentErr = errors.New("boom")
	flow := NewFlow()
	ctx := context.Background()

	flow.Begin(ctx, store, models.Customer{})
	flow.Advance(ctx, store, "2-XYZ-999")
	flow.Advance(ctx, store, "Ada")
	flow.Advance(ctx, store, "Lovelace")
	flow.Advance(ctx, store, "ada@example.com")
	flow.Advance(ctx, store, "0465 05 32 63")
	flow.Advance(ctx, store, ChoiceConfirm)
	flow.Advance(ctx, store, "Oil Change")
	flow.Advance(ctx, store, "10/23/2024")
	flow.Advance(ctx, store, "09:00")
	replies := flow.Advance(ctx, store, ChoiceConfirm)

	if !flow.Done() || flow.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %q, want failed", flow.Outcome)
	}
	if !strings.Contains(lastText(replies), "error booking") {
		t.Errorf("expected booking error message, got %q", lastText(replies))
	}

	// The customer row was written in its own request and stays behind.
	if _, err := store.CustomerByLicensePlate(ctx, "2-XYZ-999"); err != nil {
		t.Errorf("customer should remain persisted: %v", err)
	}
	if len(store.appointments) != 0 {
		t.Errorf("appointment must not exist")
	}
}

// Two conversations that fetch availability before either books can both
// take the same slot. The flow checks against its own snapshot, so nothing
// stops the second insert.
func TestFlowDoubleBookingRace(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	first, second := NewFlow(), NewFlow()
	for _, flow := range []*Flow{first, second} {
		flow.Begin(ctx, store, models.Customer{})
		flow.Advance(ctx, store, "1-ABC-123")
		flow.Advance(ctx, store, ChoiceConfirm)
		flow.Advance(ctx, store, "Oil Change")
		flow.Advance(ctx, store, "10/23/2024")
	}

	first.Advance(ctx, store, "09:00")
	first.Advance(ctx, store, ChoiceConfirm)
	second.Advance(ctx, store, "09:00")
	second.Advance(ctx, store, ChoiceConfirm)

	if first.Outcome != OutcomeBooked || second.Outcome != OutcomeBooked {
		t.Fatalf("outcomes = %q, %q, both should book", first.Outcome, second.Outcome)
	}
	if len(store.appointments) != 2 {
		t.Fatalf("appointments = %d, want 2 (double booking)", len(store.appointments))
	}
}
