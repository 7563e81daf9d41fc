package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	"github.com/stockroomhq/stockroom-backend/internal/purchaseorders"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

type purchaseOrderItemRequest struct {
	ProductName string          `json:"productName" validate:"required,min=1"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type purchaseOrderCreateRequest struct {
	OrderNumber string                     `json:"orderNumber" validate:"required,min=1"`
	SupplierID  uint                       `json:"supplierId" validate:"required"`
	Items       []purchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r purchaseOrderCreateRequest) toInput() purchaseorders.CreateInput {
	input := purchaseorders.CreateInput{
		OrderNumber: r.OrderNumber,
		SupplierID:  r.SupplierID,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, purchaseorders.LineItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return input
}

func PurchaseOrderList(svc purchaseorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func PurchaseOrderGet(svc purchaseorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func PurchaseOrderCreate(svc purchaseorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purchaseOrderCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

func PurchaseOrderMarkReceived(svc purchaseorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := svc.MarkReceived(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func PurchaseOrderDelete(svc purchaseorders.Service, logg *logger.Logger) http.HandlerFunc {
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
