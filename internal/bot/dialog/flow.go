package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/speedyfix/auto-garage/internal/bot/cards"
	"github.com/speedyfix/auto-garage/internal/models"
	"github.com/speedyfix/auto-garage/internal/validators"
)

// One state per user input the flow is waiting on. Lookups and writes happen
// inside the transition that consumes the input, never in a state of their
// own.
type State int

const (
	StateLicensePlate State = iota
	StateConfirmExisting
	StateFirstName
	StateLastName
	StateEmail
	StatePhone
	StateConfirmNew
	StateRepairType
	StateRepairDate
	StateTimeSlot
	StateConfirmAppointment
	StateDone
)

type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeBooked   Outcome = "booked"
	OutcomeCanceled Outcome = "canceled"
	OutcomeNoSlots  Outcome = "no_slots"
	OutcomeFailed   Outcome = "failed"
)

const (
	ChoiceConfirm = "Confirm"
	ChoiceCancel  = "Cancel"
)

const (
	msgAskLicensePlate    = "What is your license plate number?"
	msgInvalidPlate       = "The license plate you entered is not valid. Please use the format '1-abc-123'."
	msgFoundDetails       = "We found your details! Please confirm."
	msgNotFound           = "We couldn't find your details. Let's proceed with registration."
	msgAskFirstName       = "What is your first name?"
	msgAskLastName        = "What is your last name?"
	msgAskEmail           = "What is your email address?"
	msgInvalidEmail       = "The email you entered is not valid, please enter a valid email."
	msgAskPhone           = "What is your phone number?"
	msgInvalidPhone       = "The phone number is not valid. Please use these formats: \"014 58 03 35\", \"0465 05 32 63\", \"+32 569 32 65 21\", \"+1 586 32 65 02\""
	msgConfirmDetails     = "Please confirm your details."
	msgConfirmOrCancel    = "Please choose Confirm or Cancel."
	msgRegCanceled        = "Your registration was canceled."
	msgCustomerSaved      = "Your information has been saved. Thank you!"
	msgCustomerSaveError  = "There was an error saving your information: %v"
	msgAskRepairType      = "What type of repair do you need?"
	msgInvalidRepairType  = "Invalid repair type selected."
	msgRepairTypesError   = "An error occurred while fetching repair types: %v"
	msgAskRepairDate      = "When would you like to schedule your repair? Please provide a date (e.g., MM/DD/YYYY)."
	msgInvalidDate        = "The date you entered is invalid. Please use the format MM/DD/YYYY."
	msgAskTimeSlot        = "Please select an available time slot."
	msgNoSlotsAvailable   = "No available time slots for this date."
	msgTimeSlotsError     = "An error occurred while fetching time slots: %v"
	msgSlotNoLongerAvail  = "The selected time slot is no longer available. Please try again."
	msgInvalidSlot        = "Invalid time slot selected. Please try again."
	msgConfirmAppointment = "Is this information correct?"
	msgBookingCanceled    = "Your booking was canceled."
	msgBookingError       = "There was an error booking your appointment: %v"
	msgBookingDone        = "Your appointment has been booked. See you at the garage!"
	msgStateLost          = "Something went wrong with this conversation. Please start over."
)

// Booking is the in-progress form, one per conversation. It is serialized
// into the session store between turns.
type Booking struct {
	Customer          models.Customer `json:"customer"`
	CustomerPersisted bool            `json:"customer_persisted"`

	RepairTypeID   uint   `json:"repair_type_id"`
	RepairTypeName string `json:"repair_type_name"`

	AppointmentDate string   `json:"appointment_date"`
	AvailableStarts []string `json:"available_starts"`
	SlotStart       string   `json:"slot_start"`
}

// Flow is the appointment-booking state machine. Begin emits the opening
// prompt; every Advance consumes exactly one user input and emits the
// replies for that turn. Store failures surface as inline messages, not
// errors; once Done reports true the flow must be discarded.
type Flow struct {
	State   State   `json:"state"`
	Booking Booking `json:"booking"`
	Outcome Outcome `json:"outcome"`

	// Set when the flow ends with OutcomeBooked.
	AppointmentID uint `json:"appointment_id,omitempty"`
}

func NewFlow() *Flow {
	return &Flow{State: StateLicensePlate}
}

func (f *Flow) Done() bool {
	return f.State == StateDone
}

// Begin starts the flow, optionally pre-seeded with recognized entities. A
// well-formed seeded plate skips the plate prompt entirely.
func (f *Flow) Begin(ctx context.Context, store Store, seed models.Customer) []Reply {
	f.Booking.Customer = seed

	if validators.IsLicensePlate(seed.LicensePlate) {
		return f.resolveCustomer(ctx, store)
	}

	f.Booking.Customer.LicensePlate = ""
	f.State = StateLicensePlate
	return []Reply{Text(msgAskLicensePlate)}
}

func (f *Flow) Advance(ctx context.Context, store Store, input string) []Reply {
	input = strings.TrimSpace(input)

	switch f.State {

	case StateLicensePlate:
		if !validators.IsLicensePlate(input) {
			return []Reply{Text(msgInvalidPlate)}
		}
		f.Booking.Customer.LicensePlate = input
		return f.resolveCustomer(ctx, store)

	case StateConfirmExisting:
		switch input {
		case ChoiceConfirm:
			return f.beginRepairTypeSelection(ctx, store)
		case ChoiceCancel:
			return f.terminate(OutcomeCanceled, msgRegCanceled)
		default:
			return []Reply{Choice(msgConfirmOrCancel, ChoiceConfirm, ChoiceCancel)}
		}

	case StateFirstName:
		f.Booking.Customer.FirstName = input
		return f.nextCustomerField()

	case StateLastName:
		f.Booking.Customer.LastName = input
		return f.nextCustomerField()

	case StateEmail:
		if !validators.IsEmail(input) {
			return []Reply{Text(msgInvalidEmail)}
		}
		f.Booking.Customer.Mail = input
		return f.nextCustomerField()

	case StatePhone:
		if !validators.IsPhoneNumber(input) {
			return []Reply{Text(msgInvalidPhone)}
		}
		f.Booking.Customer.PhoneNumber = input
		return f.nextCustomerField()

	case StateConfirmNew:
		switch input {
		case ChoiceConfirm:
			created, err := store.InsertCustomer(ctx, &f.Booking.Customer)
			if err != nil {
				return f.terminate(OutcomeFailed, fmt.Sprintf(msgCustomerSaveError, err))
			}
			f.Booking.Customer = *created
			f.Booking.CustomerPersisted = true
			replies := []Reply{Text(msgCustomerSaved)}
			return append(replies, f.beginRepairTypeSelection(ctx, store)...)
		case ChoiceCancel:
			return f.terminate(OutcomeCanceled, msgRegCanceled)
		default:
			return []Reply{Choice(msgConfirmOrCancel, ChoiceConfirm, ChoiceCancel)}
		}

	case StateRepairType:
		repairTypes, err := store.RepairTypes(ctx)
		if err != nil {
			return f.terminate(OutcomeFailed, fmt.Sprintf(msgRepairTypesError, err))
		}
		for _, rt := range repairTypes {
			if rt.RepairName == input {
				f.Booking.RepairTypeID = rt.ID
				f.Booking.RepairTypeName = rt.RepairName
				f.State = StateRepairDate
				return []Reply{Text(msgAskRepairDate)}
			}
		}
		return f.restart(msgInvalidRepairType)

	case StateRepairDate:
		date, ok := validators.ParseDate(input)
		if !ok {
			return f.restart(msgInvalidDate)
		}
		f.Booking.AppointmentDate = date
		return f.listAvailableSlots(ctx, store)

	case StateTimeSlot:
		if !contains(f.Booking.AvailableStarts, input) {
			return f.restart(msgSlotNoLongerAvail)
		}
		slot, err := store.TimeSlotByStartTime(ctx, input)
		if err != nil || slot == nil {
			return f.restart(msgInvalidSlot)
		}
		f.Booking.SlotStart = slot.StartTime
		f.State = StateConfirmAppointment
		return []Reply{
			CardReply(cards.AppointmentDetails(
				&f.Booking.Customer,
				f.Booking.RepairTypeName,
				f.Booking.AppointmentDate,
				f.Booking.SlotStart,
			)),
			Choice(msgConfirmAppointment, ChoiceConfirm, ChoiceCancel),
		}

	case StateConfirmAppointment:
		switch input {
		case ChoiceConfirm:
			return f.book(ctx, store)
		case ChoiceCancel:
			return f.terminate(OutcomeCanceled, msgBookingCanceled)
		default:
			return []Reply{Choice(msgConfirmOrCancel, ChoiceConfirm, ChoiceCancel)}
		}
	}

	// StateDone or corrupted state: nothing sensible left to do.
	return f.terminate(OutcomeFailed, msgStateLost)
}

// --------- transitions ---------

func (f *Flow) resolveCustomer(ctx context.Context, store Store) []Reply {
	customer, err := store.CustomerByLicensePlate(ctx, f.Booking.Customer.LicensePlate)
	if err != nil || customer == nil {
		// Lookup misses and transport errors take the same branch: register
		// as a new customer, keeping whatever was already collected.
		replies := []Reply{Text(msgNotFound)}
		return append(replies, f.nextCustomerField()...)
	}

	f.Booking.Customer = *customer
	f.Booking.CustomerPersisted = true
	f.State = StateConfirmExisting
	return []Reply{
		CardReply(cards.CustomerDetails(customer)),
		Choice(msgFoundDetails, ChoiceConfirm, ChoiceCancel),
	}
}

// nextCustomerField prompts for the first missing field, so entity-seeded
// values are never asked again. With nothing missing it moves to the
// summary confirmation.
func (f *Flow) nextCustomerField() []Reply {
	customer := &f.Booking.Customer

	switch {
	case customer.FirstName == "":
		f.State = StateFirstName
		return []Reply{Text(msgAskFirstName)}
	case customer.LastName == "":
		f.State = StateLastName
		return []Reply{Text(msgAskLastName)}
	case customer.Mail == "":
		f.State = StateEmail
		return []Reply{Text(msgAskEmail)}
	case customer.PhoneNumber == "":
		f.State = StatePhone
		return []Reply{Text(msgAskPhone)}
	}

	f.State = StateConfirmNew
	return []Reply{
		CardReply(cards.CustomerDetails(customer)),
		Choice(msgConfirmDetails, ChoiceConfirm, ChoiceCancel),
	}
}

func (f *Flow) beginRepairTypeSelection(ctx context.Context, store Store) []Reply {
	repairTypes, err := store.RepairTypes(ctx)
	if err != nil {
		return f.terminate(OutcomeFailed, fmt.Sprintf(msgRepairTypesError, err))
	}

	names := make([]string, 0, len(repairTypes))
	for _, rt := range repairTypes {
		names = append(names, rt.RepairName)
	}

	f.State = StateRepairType
	return []Reply{Choice(msgAskRepairType, names...)}
}

func (f *Flow) listAvailableSlots(ctx context.Context, store Store) []Reply {
	slots, err := store.TimeSlots(ctx)
	if err != nil {
		return f.terminate(OutcomeFailed, fmt.Sprintf(msgTimeSlotsError, err))
	}

	available := AvailableSlots(slots, f.Booking.AppointmentDate)
	if len(available) == 0 {
		return f.terminate(OutcomeNoSlots, msgNoSlotsAvailable)
	}

	starts := make([]string, 0, len(available))
	for _, slot := range available {
		starts = append(starts, slot.StartTime)
	}

	f.Booking.AvailableStarts = starts
	f.State = StateTimeSlot
	return []Reply{Choice(msgAskTimeSlot, starts...)}
}

// book re-resolves every record by its natural key before the insert, so a
// stale in-memory copy can't leak ids into the appointment. The customer may
// already be persisted at this point; a failure here leaves it behind with
// no appointment, and there is deliberately no compensating delete.
func (f *Flow) book(ctx context.Context, store Store) []Reply {
	slot, err := store.TimeSlotByStartTime(ctx, f.Booking.SlotStart)
	if err != nil {
		return f.terminate(OutcomeFailed, fmt.Sprintf(msgBookingError, err))
	}
	repairType, err := store.RepairTypeByID(ctx, f.Booking.RepairTypeID)
	if err != nil {
		return f.terminate(OutcomeFailed, fmt.Sprintf(msgBookingError, err))
	}
	customer, err := store.CustomerByLicensePlate(ctx, f.Booking.Customer.LicensePlate)
	if err != nil {
		return f.terminate(OutcomeFailed, fmt.Sprintf(msgBookingError, err))
	}

	appointment := &models.Appointment{
		AppointmentDate: f.Booking.AppointmentDate,
		TimeSlotID:      slot.ID,
		RepairTypeID:    repairType.ID,
		CustomerID:      customer.ID,
	}

	created, err := store.InsertAppointment(ctx, appointment)
	if err != nil {
		return f.terminate(OutcomeFailed, fmt.Sprintf(msgBookingError, err))
	}

	f.AppointmentID = created.ID
	f.State = StateDone
	f.Outcome = OutcomeBooked
	return []Reply{
		CardReply(cards.AppointmentDetails(
			customer,
			repairType.RepairName,
			f.Booking.AppointmentDate,
			slot.StartTime,
		)),
		Text(msgBookingDone),
	}
}

// restart throws the whole form away and starts over from the plate prompt.
// Catalog, date and slot mismatches reset the dialog instead of re-prompting
// the one bad field.
func (f *Flow) restart(why string) []Reply {
	*f = Flow{State: StateLicensePlate}
	return []Reply{Text(why), Text(msgAskLicensePlate)}
}

func (f *Flow) terminate(outcome Outcome, msg string) []Reply {
	f.State = StateDone
	f.Outcome = outcome
	return []Reply{Text(msg)}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
