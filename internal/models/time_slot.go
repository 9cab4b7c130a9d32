package models

// StartTime is a recurring daily slot ("09:00"), not a calendar occurrence.
type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`

	Appointments []Appointment `json:"appointments,omitempty"`
}
