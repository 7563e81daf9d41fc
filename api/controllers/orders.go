package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	"github.com/stockroomhq/stockroom-backend/internal/orders"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

type orderItemRequest struct {
	ProductName string          `json:"productName" validate:"required,min=1"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type orderCreateRequest struct {
	OrderNumber      string             `json:"orderNumber" validate:"required,min=1"`
	SupplierID       *uint              `json:"supplierId,omitempty"`
	ExpectedDelivery *time.Time         `json:"expectedDelivery,omitempty"`
	Items            []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r orderCreateRequest) toInput() orders.CreateInput {
	input := orders.CreateInput{
		OrderNumber:      r.OrderNumber,
		SupplierID:       r.SupplierID,
		ExpectedDelivery: r.ExpectedDelivery,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, orders.LineItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return input
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderBulkStatusRequest struct {
	IDs    []uint `json:"ids" validate:"required,min=1"`
	Status string `json:"status" validate:"required"`
}

func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func OrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req orderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func OrderBulkUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderBulkStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func OrderDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}

func OrderBulkDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkIDsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deleted, err := svc.BulkDelete(r.Context(), req.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deletedCount": deleted})
	}
}
