package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/speedyfix/auto-garage/internal/audit"
	"github.com/speedyfix/auto-garage/internal/dto"
	"github.com/speedyfix/auto-garage/internal/httperr"
	"github.com/speedyfix/auto-garage/internal/httpresp"
	"github.com/speedyfix/auto-garage/internal/models"
	"github.com/speedyfix/auto-garage/internal/timezone"
)

type AppointmentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	tz    string
}

func NewAppointmentHandler(db *gorm.DB, audit *audit.Dispatcher, tz string) *AppointmentHandler {
	return &AppointmentHandler{db: db, audit: audit, tz: tz}
}

func (h *AppointmentHandler) List(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.db.
		Preload("TimeSlot").
		Preload("RepairType").
		Preload("Customer").
		Order("appointment_date ASC, time_slot_id ASC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}
	httpresp.OK(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	var appointment models.Appointment
	if err := h.db.
		Preload("TimeSlot").
		Preload("RepairType").
		Preload("Customer").
		First(&appointment, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	httpresp.OK(c, appointment)
}

type AppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" binding:"required"`
	TimeSlotID      uint   `json:"time_slot_id" binding:"required"`
	RepairTypeID    uint   `json:"repair_type_id" binding:"required"`
	CustomerID      uint   `json:"customer_id" binding:"required"`
}

// Create inserts the booking record as-is. The store does not enforce the
// one-appointment-per-(date, slot) rule; the booking dialog owns that check.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	appointment := models.Appointment{
		AppointmentDate: req.AppointmentDate,
		TimeSlotID:      req.TimeSlotID,
		RepairTypeID:    req.RepairTypeID,
		CustomerID:      req.CustomerID,
	}

	if err := h.db.Create(&appointment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_appointment", "Could not create appointment.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &appointment.ID,
	})

	httpresp.Created(c, appointment)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var appointment models.Appointment
	if err := h.db.First(&appointment, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	appointment.AppointmentDate = req.AppointmentDate
	appointment.TimeSlotID = req.TimeSlotID
	appointment.RepairTypeID = req.RepairTypeID
	appointment.CustomerID = req.CustomerID

	if err := h.db.Save(&appointment).Error; err != nil {
		httperr.Internal(c, "failed_to_update_appointment", "Could not update appointment.")
		return
	}
	httpresp.OK(c, appointment)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	var appointment models.Appointment
	if err := h.db.First(&appointment, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if err := h.db.Delete(&appointment).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Could not delete appointment.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointment.ID,
	})

	c.Status(204)
}

// ListByDay renders the joined schedule for one date. Without an explicit
// date it shows today's schedule in garage-local time.
func (h *AppointmentHandler) ListByDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = timezone.NowIn(h.tz).Format(models.DateLayout)
	}

	var rows []dto.AppointmentDayDTO
	if err := h.db.
		Model(&models.Appointment{}).
		Select(`appointments.id,
			appointments.appointment_date,
			time_slots.start_time,
			repair_types.repair_name,
			customers.first_name || ' ' || customers.last_name AS customer_name,
			customers.license_plate`).
		Joins("JOIN time_slots ON time_slots.id = appointments.time_slot_id").
		Joins("JOIN repair_types ON repair_types.id = appointments.repair_type_id").
		Joins("JOIN customers ON customers.id = appointments.customer_id").
		Where("appointments.appointment_date = ?", date).
		Order("time_slots.start_time ASC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, rows)
}
