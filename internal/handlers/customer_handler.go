package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/speedyfix/auto-garage/internal/audit"
	"github.com/speedyfix/auto-garage/internal/httperr"
	"github.com/speedyfix/auto-garage/internal/httpresp"
	"github.com/speedyfix/auto-garage/internal/models"
	"github.com/speedyfix/auto-garage/internal/validators"
)

type CustomerHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCustomerHandler(db *gorm.DB, audit *audit.Dispatcher) *CustomerHandler {
	return &CustomerHandler{db: db, audit: audit}
}

func (h *CustomerHandler) List(c *gin.Context) {
	var customers []models.Customer
	if err := h.db.Order("id ASC").Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Could not list customers.")
		return
	}
	httpresp.OK(c, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	var customer models.Customer
	if err := h.db.First(&customer, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}
	httpresp.OK(c, customer)
}

// GetByLicensePlate resolves a customer by plate, case-insensitively. The
// plate is the natural lookup key the bot identifies returning customers by.
func (h *CustomerHandler) GetByLicensePlate(c *gin.Context) {
	plate := c.Param("plate")

	var customer models.Customer
	if err := h.db.
		Where("LOWER(license_plate) = LOWER(?)", plate).
		First(&customer).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "No customer with that license plate.")
		return
	}
	httpresp.OK(c, customer)
}

type CreateCustomerRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Mail         string `json:"mail" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	LicensePlate string `json:"license_plate" binding:"required"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid customer payload.")
		return
	}

	if !validators.IsLicensePlate(req.LicensePlate) {
		httperr.BadRequest(c, "invalid_license_plate", "License plate must look like '1-abc-123'.")
		return
	}
	if !validators.IsEmail(req.Mail) {
		httperr.BadRequest(c, "invalid_email", "Email address is not valid.")
		return
	}

	customer := models.Customer{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Mail:         req.Mail,
		PhoneNumber:  req.PhoneNumber,
		LicensePlate: req.LicensePlate,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_create_customer", "Could not create customer.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "customer_created",
		Entity:   "customer",
		EntityID: &customer.ID,
	})

	httpresp.Created(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var customer models.Customer
	if err := h.db.First(&customer, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid customer payload.")
		return
	}

	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.Mail = req.Mail
	customer.PhoneNumber = req.PhoneNumber
	customer.LicensePlate = req.LicensePlate

	if err := h.db.Save(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_update_customer", "Could not update customer.")
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	var customer models.Customer
	if err := h.db.First(&customer, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	if err := h.db.Delete(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_customer", "Could not delete customer.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "customer_deleted",
		Entity:   "customer",
		EntityID: &customer.ID,
	})

	c.Status(204)
}
