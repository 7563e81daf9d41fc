package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockroomhq/stockroom-backend/internal/orders"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

type stubOrderService struct {
	order      *orders.Order
	list       []orders.Order
	status     *orders.StatusResult
	bulkStatus *orders.BulkStatusResult
	err        error
}

func (s stubOrderService) Create(context.Context, orders.CreateInput) (*orders.Order, error) {
	return s.order, s.err
}

func (s stubOrderService) Get(context.Context, uint) (*orders.Order, error) {
	return s.order, s.err
}

func (s stubOrderService) List(context.Context) ([]orders.Order, error) {
	return s.list, s.err
}

func (s stubOrderService) UpdateStatus(context.Context, uint, string) (*orders.StatusResult, error) {
	return s.status, s.err
}

func (s stubOrderService) BulkUpdateStatus(context.Context, []uint, string) (*orders.BulkStatusResult, error) {
	return s.bulkStatus, s.err
}

func (s stubOrderService) Delete(context.Context, uint) error {
	return s.err
}

func (s stubOrderService) BulkDelete(context.Context, []uint) (int64, error) {
	return int64(len(s.list)), s.err
}

func (s stubOrderService) PendingCount(context.Context) (int64, error) {
	return 0, s.err
}

func TestOrderUpdateStatusReturnsWarnings(t *testing.T) {
	handler := OrderUpdateStatus(stubOrderService{
		status: &orders.StatusResult{
			ID:       4,
			Status:   "COMPLETED",
			Warnings: []string{`order ORD-1: item "x" not applied: product name is required`},
		},
	}, nil)

	body := bytes.NewBufferString(`{"status":"COMPLETED"}`)
	req := withIDParam(httptest.NewRequest(http.MethodPut, "/api/v1/orders/4/status", body), "4")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data orders.StatusResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != "COMPLETED" || len(envelope.Data.Warnings) != 1 {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestOrderBulkUpdateStatusValidatesBody(t *testing.T) {
	handler := OrderBulkUpdateStatus(stubOrderService{}, nil)

	body := bytes.NewBufferString(`{"ids":[],"status":"COMPLETED"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/bulk-status", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestOrderCreateConflict(t *testing.T) {
	handler := OrderCreate(stubOrderService{
		err: pkgerrors.New(pkgerrors.CodeConflict, "an order with this number already exists"),
	}, nil)

	body := bytes.NewBufferString(`{"orderNumber":"ORD-1","items":[{"productName":"Widget","quantity":2}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}
