package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/speedyfix/auto-garage/internal/audit"
	"github.com/speedyfix/auto-garage/internal/httperr"
	"github.com/speedyfix/auto-garage/internal/httpresp"
	"github.com/speedyfix/auto-garage/internal/models"
)

type TimeSlotHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTimeSlotHandler(db *gorm.DB, audit *audit.Dispatcher) *TimeSlotHandler {
	return &TimeSlotHandler{db: db, audit: audit}
}

// List returns every slot with its booked appointments preloaded. The bot
// filters availability for a date out of this response, so the appointments
// must ride along.
func (h *TimeSlotHandler) List(c *gin.Context) {
	var slots []models.TimeSlot
	if err := h.db.
		Preload("Appointments").
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_slots", "Could not list time slots.")
		return
	}
	httpresp.OK(c, slots)
}

func (h *TimeSlotHandler) Get(c *gin.Context) {
	var slot models.TimeSlot
	if err := h.db.
		Preload("Appointments").
		First(&slot, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "time_slot_not_found", "Time slot not found.")
		return
	}
	httpresp.OK(c, slot)
}

type TimeSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
}

func (h *TimeSlotHandler) Create(c *gin.Context) {
	var req TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid time slot payload.")
		return
	}

	slot := models.TimeSlot{StartTime: req.StartTime}
	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_time_slot", "Could not create time slot.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "time_slot_created",
		Entity:   "time_slot",
		EntityID: &slot.ID,
	})

	httpresp.Created(c, slot)
}

func (h *TimeSlotHandler) Update(c *gin.Context) {
	var slot models.TimeSlot
	if err := h.db.First(&slot, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "time_slot_not_found", "Time slot not found.")
		return
	}

	var req TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid time slot payload.")
		return
	}

	slot.StartTime = req.StartTime
	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_update_time_slot", "Could not update time slot.")
		return
	}
	httpresp.OK(c, slot)
}

func (h *TimeSlotHandler) Delete(c *gin.Context) {
	var slot models.TimeSlot
	if err := h.db.First(&slot, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "time_slot_not_found", "Time slot not found.")
		return
	}

	if err := h.db.Delete(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_time_slot", "Could not delete time slot.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "time_slot_deleted",
		Entity:   "time_slot",
		EntityID: &slot.ID,
	})

	c.Status(204)
}
