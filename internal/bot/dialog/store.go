package dialog

import (
	"context"

	"github.com/speedyfix/auto-garage/internal/models"
)

// Store is the booking data the dialog needs, as served by the garage REST
// API. garageapi.Client is the production implementation.
type Store interface {
	CustomerByLicensePlate(ctx context.Context, plate string) (*models.Customer, error)
	InsertCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)

	RepairTypes(ctx context.Context) ([]models.RepairType, error)
	RepairTypeByID(ctx context.Context, id uint) (*models.RepairType, error)

	TimeSlots(ctx context.Context) ([]models.TimeSlot, error)
	TimeSlotByStartTime(ctx context.Context, startTime string) (*models.TimeSlot, error)

	InsertAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
}
