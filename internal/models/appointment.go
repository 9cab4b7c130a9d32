package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Calendar date in "2006-01-02" form. Slots recur daily, so the pair
	// (appointment_date, time_slot_id) identifies one booking.
	AppointmentDate string `gorm:"size:10;index" json:"appointment_date"`

	TimeSlotID uint      `json:"time_slot_id"`
	TimeSlot   *TimeSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"time_slot,omitempty"`

	RepairTypeID uint        `json:"repair_type_id"`
	RepairType   *RepairType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"repair_type,omitempty"`

	CustomerID uint      `json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const DateLayout = "2006-01-02"
