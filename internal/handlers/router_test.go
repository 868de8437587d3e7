package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pickmate-wms/pickmatego/internal/config"
	"github.com/pickmate-wms/pickmatego/internal/database"
	"github.com/pickmate-wms/pickmatego/internal/models"
	"github.com/pickmate-wms/pickmatego/internal/utils"
)

func testRouter(t *testing.T) (*Router, *config.Config) {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret-key-12345"}
	return NewRouter(&database.DB{}, cfg, nil), cfg
}

func tokenFor(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	user := &models.UserAuth{ID: "uuid-1234", Email: "test@example.com", Role: role}
	accessToken, _, err := utils.GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return accessToken
}

func TestHealthCheck(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestBarcodeImageRequiresAuth(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/report/barcode?type=Code128&value=LOC001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", rec.Code)
	}
}

func TestBarcodeImage(t *testing.T) {
	router, cfg := testRouter(t)

	req := httptest.NewRequest("GET", "/report/barcode?type=Code128&width=600&height=100&value=LOC001", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, models.RoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
}

func TestBarcodeImageUnknownType(t *testing.T) {
	router, cfg := testRouter(t)

	req := httptest.NewRequest("GET", "/report/barcode?type=EAN13&value=123", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, models.RoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestMarkTodoRequiresManagerRole(t *testing.T) {
	router, cfg := testRouter(t)

	req := httptest.NewRequest("POST", "/api/pickings/mark-todo", strings.NewReader(`{"picking_ids":[1]}`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, models.RoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for plain user, got %d", rec.Code)
	}
}

func TestMarkTodoRejectsEmptySelection(t *testing.T) {
	router, cfg := testRouter(t)

	req := httptest.NewRequest("POST", "/api/pickings/mark-todo", strings.NewReader(`{"picking_ids":[]}`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, models.RoleStockManager))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty selection, got %d", rec.Code)
	}
}
