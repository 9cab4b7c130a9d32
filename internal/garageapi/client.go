// Package garageapi is the bot's client of the garage REST API. The dialog
// engine only sees the Store interface it declares; this client is the real
// implementation.
package garageapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/speedyfix/auto-garage/internal/models"
)

var ErrNotFound = errors.New("garageapi: not found")

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// --------- Customers ---------

func (c *Client) Customers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := c.get(ctx, "/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) CustomerByLicensePlate(ctx context.Context, plate string) (*models.Customer, error) {
	var customer models.Customer
	if err := c.get(ctx, "/customers/licenseplate/"+url.PathEscape(plate), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) InsertCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	var created models.Customer
	if err := c.post(ctx, "/customers", customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// --------- Repair types ---------

func (c *Client) RepairTypes(ctx context.Context) ([]models.RepairType, error) {
	var repairTypes []models.RepairType
	if err := c.get(ctx, "/repairtypes", &repairTypes); err != nil {
		return nil, err
	}
	return repairTypes, nil
}

func (c *Client) RepairTypeByID(ctx context.Context, id uint) (*models.RepairType, error) {
	var repairType models.RepairType
	if err := c.get(ctx, fmt.Sprintf("/repairtypes/%d", id), &repairType); err != nil {
		return nil, err
	}
	return &repairType, nil
}

// --------- Time slots ---------

// TimeSlots returns the slot catalog with booked appointments preloaded,
// which is what the availability filter needs.
func (c *Client) TimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := c.get(ctx, "/timeslots", &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) TimeSlotByStartTime(ctx context.Context, startTime string) (*models.TimeSlot, error) {
	slots, err := c.TimeSlots(ctx)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].StartTime == startTime {
			return &slots[i], nil
		}
	}
	return nil, ErrNotFound
}

// --------- Appointments ---------

func (c *Client) InsertAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	var created models.Appointment
	if err := c.post(ctx, "/appointments", appointment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// --------- Transport ---------

type apiError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Code != "" {
			return fmt.Errorf("garageapi: %s: %s", apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("garageapi: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
