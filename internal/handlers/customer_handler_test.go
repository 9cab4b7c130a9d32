package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/speedyfix/auto-garage/internal/models"
)

func TestCreateCustomer(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/customers", gin.H{
		"first_name":    "Ada",
		"last_name":     "Lovelace",
		"mail":          "ada@example.com",
		"phone_number":  "0465 05 32 63",
		"license_plate": "2-XYZ-999",
	}, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	created := decode[models.Customer](t, w)
	if created.ID == 0 || created.LicensePlate != "2-XYZ-999" {
		t.Errorf("unexpected customer: %+v", created)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name string
		body gin.H
		code string
	}{
		{
			name: "bad plate",
			body: gin.H{"first_name": "A", "last_name": "B", "mail": "a@b.com", "phone_number": "0465 05 32 63", "license_plate": "ABC-123"},
			code: "invalid_license_plate",
		},
		{
			name: "bad email",
			body: gin.H{"first_name": "A", "last_name": "B", "mail": "not-an-email", "phone_number": "0465 05 32 63", "license_plate": "1-ABC-123"},
			code: "invalid_email",
		},
		{
			name: "missing fields",
			body: gin.H{"first_name": "A"},
			code: "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/customers", tt.body, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			resp := decode[map[string]string](t, w)
			if resp["error_code"] != tt.code {
				t.Errorf("error_code = %q, want %q", resp["error_code"], tt.code)
			}
		})
	}
}

func TestGetCustomerByLicensePlateCaseInsensitive(t *testing.T) {
	r, db := setupRouter(t)
	seeded := seedCustomer(t, db)

	for _, plate := range []string{"1-ABC-123", "1-abc-123", "1-AbC-123"} {
		w := doJSON(t, r, http.MethodGet, "/api/customers/licenseplate/"+plate, nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("plate %q: status = %d, body %s", plate, w.Code, w.Body.String())
		}
		got := decode[models.Customer](t, w)
		if got.ID != seeded.ID {
			t.Errorf("plate %q resolved customer %d, want %d", plate, got.ID, seeded.ID)
		}
	}
}

func TestGetCustomerByLicensePlateNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/customers/licenseplate/9-ZZZ-999", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestListCustomers(t *testing.T) {
	r, db := setupRouter(t)
	seedCustomer(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/customers", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	customers := decode[[]models.Customer](t, w)
	if len(customers) != 1 {
		t.Errorf("customers = %d, want 1", len(customers))
	}
}

func TestUpdateCustomerRequiresAuth(t *testing.T) {
	r, db := setupRouter(t)
	seeded := seedCustomer(t, db)

	body := gin.H{
		"first_name":    "Johnny",
		"last_name":     "Doe",
		"mail":          "john.doe@example.com",
		"phone_number":  "0465 05 32 63",
		"license_plate": "1-ABC-123",
	}

	w := doJSON(t, r, http.MethodPut, "/api/customers/1", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("without token: status = %d, want 401", w.Code)
	}

	token := staffToken(t, r)
	w = doJSON(t, r, http.MethodPut, "/api/customers/1", body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("with token: status = %d, body %s", w.Code, w.Body.String())
	}

	var got models.Customer
	if err := db.First(&got, seeded.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.FirstName != "Johnny" {
		t.Errorf("first_name = %q, want Johnny", got.FirstName)
	}
}

func TestDeleteCustomer(t *testing.T) {
	r, db := setupRouter(t)
	seeded := seedCustomer(t, db)
	token := staffToken(t, r)

	w := doJSON(t, r, http.MethodDelete, "/api/customers/1", nil, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Customer{}).Where("id = ?", seeded.ID).Count(&count)
	if count != 0 {
		t.Errorf("customer still present after delete")
	}
}
