package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

type stubInventoryService struct {
	result *inventory.SaveResult
	item   *inventory.Item
	items  []inventory.Item
	err    error
}

func (s stubInventoryService) Create(context.Context, inventory.SaveInput) (*inventory.SaveResult, error) {
	return s.result, s.err
}

func (s stubInventoryService) Update(context.Context, uint, inventory.SaveInput) (*inventory.SaveResult, error) {
	return s.result, s.err
}

func (s stubInventoryService) Get(context.Context, uint) (*inventory.Item, error) {
	return s.item, s.err
}

func (s stubInventoryService) List(context.Context) ([]inventory.Item, error) {
	return s.items, s.err
}

func (s stubInventoryService) Delete(context.Context, uint) error {
	return s.err
}

func (s stubInventoryService) BulkDelete(context.Context, []uint) (int64, error) {
	return int64(len(s.items)), s.err
}

func (s stubInventoryService) MarkAlertViewed(context.Context, uint) error {
	return s.err
}

func (s stubInventoryService) Counts(context.Context) (inventory.CountSummary, error) {
	return inventory.CountSummary{}, s.err
}

func (s stubInventoryService) ApplyIncrement(context.Context, *gorm.DB, string, int) error {
	return s.err
}

func withIDParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestInventoryCreateSuccess(t *testing.T) {
	handler := InventoryCreate(stubInventoryService{
		result: &inventory.SaveResult{ID: 7, Status: 3, StatusText: "In-Stock"},
	}, nil)

	body := bytes.NewBufferString(`{"name":"Widget","quantity":10,"threshold":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}

	var envelope struct {
		Data inventory.SaveResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 7 || envelope.Data.StatusText != "In-Stock" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestInventoryCreateRejectsUnknownFields(t *testing.T) {
	handler := InventoryCreate(stubInventoryService{}, nil)

	body := bytes.NewBufferString(`{"name":"Widget","quantity":1,"threshold":1,"status":3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryCreateRejectsNegativeQuantity(t *testing.T) {
	handler := InventoryCreate(stubInventoryService{}, nil)

	body := bytes.NewBufferString(`{"name":"Widget","quantity":-2,"threshold":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryGetInvalidID(t *testing.T) {
	handler := InventoryGet(stubInventoryService{}, nil)

	req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/v1/items/abc", nil), "abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryMarkAlertViewedNotFound(t *testing.T) {
	handler := InventoryMarkAlertViewed(stubInventoryService{
		err: pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found"),
	}, nil)

	req := withIDParam(httptest.NewRequest(http.MethodPost, "/api/v1/items/99/mark-viewed", nil), "99")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
