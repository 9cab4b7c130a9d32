package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/speedyfix/auto-garage/internal/config"
	dbpkg "github.com/speedyfix/auto-garage/internal/db"
	"github.com/speedyfix/auto-garage/internal/models"
	"github.com/speedyfix/auto-garage/internal/routes"
)

var testDBCounter int

// setupRouter wires the full API against a fresh in-memory sqlite database,
// so tests exercise routing and middleware, not just handler funcs.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDBCounter++
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBCounter)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret"}
	r := gin.New()
	routes.RegisterRoutes(r, gdb, cfg)
	return r, gdb
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// staffToken registers a staff account and returns its JWT.
func staffToken(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Test Mechanic",
		"email":    "mechanic@speedyfix.test",
		"password": "secret123",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[map[string]any](t, w)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("no token in response: %s", w.Body.String())
	}
	return token
}

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	customer := models.Customer{
		FirstName:    "John",
		LastName:     "Doe",
		Mail:         "john.doe@example.com",
		PhoneNumber:  "0465 05 32 63",
		LicensePlate: "1-ABC-123",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}
