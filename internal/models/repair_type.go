package models

type RepairType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RepairName        string `gorm:"size:100;not null" json:"repair_name"`
	RepairDescription string `gorm:"size:255" json:"repair_description"`

	Appointments []Appointment `json:"appointments,omitempty"`
}
