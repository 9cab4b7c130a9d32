package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/speedyfix/auto-garage/internal/audit"
	"github.com/speedyfix/auto-garage/internal/httperr"
	"github.com/speedyfix/auto-garage/internal/httpresp"
	"github.com/speedyfix/auto-garage/internal/models"
)

type RepairTypeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewRepairTypeHandler(db *gorm.DB, audit *audit.Dispatcher) *RepairTypeHandler {
	return &RepairTypeHandler{db: db, audit: audit}
}

func (h *RepairTypeHandler) List(c *gin.Context) {
	var repairTypes []models.RepairType
	if err := h.db.
		Preload("Appointments").
		Order("id ASC").
		Find(&repairTypes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_repair_types", "Could not list repair types.")
		return
	}
	httpresp.OK(c, repairTypes)
}

func (h *RepairTypeHandler) Get(c *gin.Context) {
	var repairType models.RepairType
	if err := h.db.
		Preload("Appointments").
		First(&repairType, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "repair_type_not_found", "Repair type not found.")
		return
	}
	httpresp.OK(c, repairType)
}

type RepairTypeRequest struct {
	RepairName        string `json:"repair_name" binding:"required"`
	RepairDescription string `json:"repair_description"`
}

func (h *RepairTypeHandler) Create(c *gin.Context) {
	var req RepairTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid repair type payload.")
		return
	}

	repairType := models.RepairType{
		RepairName:        req.RepairName,
		RepairDescription: req.RepairDescription,
	}
	if err := h.db.Create(&repairType).Error; err != nil {
		httperr.Internal(c, "failed_to_create_repair_type", "Could not create repair type.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "repair_type_created",
		Entity:   "repair_type",
		EntityID: &repairType.ID,
	})

	httpresp.Created(c, repairType)
}

func (h *RepairTypeHandler) Update(c *gin.Context) {
	var repairType models.RepairType
	if err := h.db.First(&repairType, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "repair_type_not_found", "Repair type not found.")
		return
	}

	var req RepairTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid repair type payload.")
		return
	}

	repairType.RepairName = req.RepairName
	repairType.RepairDescription = req.RepairDescription

	if err := h.db.Save(&repairType).Error; err != nil {
		httperr.Internal(c, "failed_to_update_repair_type", "Could not update repair type.")
		return
	}
	httpresp.OK(c, repairType)
}

func (h *RepairTypeHandler) Delete(c *gin.Context) {
	var repairType models.RepairType
	if err := h.db.First(&repairType, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "repair_type_not_found", "Repair type not found.")
		return
	}

	if err := h.db.Delete(&repairType).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_repair_type", "Could not delete repair type.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "repair_type_deleted",
		Entity:   "repair_type",
		EntityID: &repairType.ID,
	})

	c.Status(204)
}
