package dto

// Joined day view for the staff dashboard list.
type AppointmentDayDTO struct {
	ID              uint   `json:"id"`
	AppointmentDate string `json:"appointment_date"`
	StartTime       string `json:"start_time"`
	RepairName      string `json:"repair_name"`
	CustomerName    string `json:"customer_name"`
	LicensePlate    string `json:"license_plate"`
}
