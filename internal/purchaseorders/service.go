package purchaseorders

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// LineItemInput is one requested line on a new purchase order.
type LineItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateInput carries the fields of a new purchase order.
type CreateInput struct {
	OrderNumber string
	SupplierID  uint
	Items       []LineItemInput
}

// LineItem is the read model for a purchase order line.
type LineItem struct {
	ID          uint            `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// PurchaseOrder is the read model for a purchase order.
type PurchaseOrder struct {
	ID           uint            `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	SupplierID   uint            `json:"supplierId"`
	SupplierName string          `json:"supplierName,omitempty"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Received     bool            `json:"received"`
	Items        []LineItem      `json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Service owns purchase orders placed with suppliers. Receiving a purchase
// order is bookkeeping only; stock arrives through the orders workflow.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*PurchaseOrder, error)
	Get(ctx context.Context, id uint) (*PurchaseOrder, error)
	List(ctx context.Context) ([]PurchaseOrder, error)
	MarkReceived(ctx context.Context, id uint) (*PurchaseOrder, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService wires the purchase order service.
func NewService(repository Repository) Service {
	return &service{repo: repository}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*PurchaseOrder, error) {
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	if input.OrderNumber == "" {
		return nil, errors.New(errors.CodeValidation, "order number is required")
	}
	if input.SupplierID == 0 {
		return nil, errors.New(errors.CodeValidation, "supplier is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.New(errors.CodeValidation, "a purchase order needs at least one item")
	}

	total := decimal.Zero
	record := models.PurchaseOrder{
		OrderNumber: input.OrderNumber,
		SupplierID:  input.SupplierID,
	}
	for i, item := range input.Items {
		name := strings.TrimSpace(item.ProductName)
		if name == "" {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("item %d: product name is required", i+1))
		}
		if item.Quantity <= 0 {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		record.Items = append(record.Items, models.PurchaseOrderItem{
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	record.TotalCost = total

	if err := s.repo.Create(ctx, &record); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, errors.New(errors.CodeConflict, "a purchase order with this number already exists")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "creating purchase order")
	}
	result := toPurchaseOrder(&record)
	return &result, nil
}

func (s *service) Get(ctx context.Context, id uint) (*PurchaseOrder, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toPurchaseOrder(record)
	return &result, nil
}

func (s *service) List(ctx context.Context) ([]PurchaseOrder, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing purchase orders")
	}
	result := make([]PurchaseOrder, 0, len(records))
	for i := range records {
		result = append(result, toPurchaseOrder(&records[i]))
	}
	return result, nil
}

// MarkReceived flips the received flag. Idempotent.
func (s *service) MarkReceived(ctx context.Context, id uint) (*PurchaseOrder, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Received {
		record.Received = true
		if err := s.repo.Save(ctx, record); err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "marking purchase order received")
		}
	}
	result := toPurchaseOrder(record)
	return &result, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting purchase order")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "purchase order not found")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "purchase order not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading purchase order")
	}
	return record, nil
}

func toPurchaseOrder(record *models.PurchaseOrder) PurchaseOrder {
	order := PurchaseOrder{
		ID:          record.ID,
		OrderNumber: record.OrderNumber,
		SupplierID:  record.SupplierID,
		TotalCost:   record.TotalCost,
		Received:    record.Received,
		Items:       make([]LineItem, 0, len(record.Items)),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	if record.Supplier != nil {
		order.SupplierName = record.Supplier.Name
	}
	for _, item := range record.Items {
		order.Items = append(order.Items, LineItem{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return order
}
