package db

import (
	"time"

	"github.com/speedyfix/auto-garage/internal/models"
	"gorm.io/gorm"
)

// Seed fills an empty database with the slot grid and the repair catalog.
// It is a no-op once customers exist, so restarting the API is safe.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	customers := []models.Customer{
		{
			FirstName:    "John",
			LastName:     "Doe",
			Mail:         "john.doe@example.com",
			PhoneNumber:  "123456789",
			LicensePlate: "1-ABC-123",
		},
		{
			FirstName:    "Jane",
			LastName:     "Smith",
			Mail:         "jane.smith@example.com",
			PhoneNumber:  "987654321",
			LicensePlate: "2-DEF-456",
		},
	}
	if err := db.Create(&customers).Error; err != nil {
		return err
	}

	// Half-hour slots from 09:00 until closing at 17:00.
	var slots []models.TimeSlot
	day := time.Date(2024, 10, 22, 9, 0, 0, 0, time.UTC)
	for t := day; t.Hour() < 17; t = t.Add(30 * time.Minute) {
		slots = append(slots, models.TimeSlot{StartTime: t.Format("15:04")})
	}
	if err := db.Create(&slots).Error; err != nil {
		return err
	}

	repairTypes := []models.RepairType{
		{RepairName: "Engine Repair", RepairDescription: "Fixing or replacing engine components"},
		{RepairName: "Tire Change", RepairDescription: "Replacing worn-out tires"},
		{RepairName: "Large maintenance", RepairDescription: "Large maintenance, including engine, transmission, and major components."},
		{RepairName: "Minor maintenance", RepairDescription: "Minor maintenance, such as oil change, filter replacements, and checks."},
		{RepairName: "Oil Change", RepairDescription: "Changing the engine oil to maintain proper engine performance."},
	}
	if err := db.Create(&repairTypes).Error; err != nil {
		return err
	}

	appointments := []models.Appointment{
		{
			AppointmentDate: "2024-10-22",
			TimeSlotID:      slots[0].ID,
			RepairTypeID:    repairTypes[0].ID,
			CustomerID:      customers[0].ID,
		},
		{
			AppointmentDate: "2024-10-22",
			TimeSlotID:      slots[1].ID,
			RepairTypeID:    repairTypes[1].ID,
			CustomerID:      customers[1].ID,
		},
	}
	return db.Create(&appointments).Error
}
