package models

import "time"

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Mail         string `gorm:"size:100" json:"mail"`
	PhoneNumber  string `gorm:"size:30" json:"phone_number"`
	LicensePlate string `gorm:"size:20;index" json:"license_plate"`

	Appointments []Appointment `gorm:"constraint:OnDelete:CASCADE;" json:"appointments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
