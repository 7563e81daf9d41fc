package orders

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// StockApplier receives fulfilled line items into inventory. Implemented by
// the inventory service; injected to keep the dependency one-directional.
type StockApplier interface {
	ApplyIncrement(ctx context.Context, tx *gorm.DB, productName string, quantity int) error
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// LineItemInput is one requested line on a new order.
type LineItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateInput carries the fields of a new order.
type CreateInput struct {
	OrderNumber      string
	SupplierID       *uint
	ExpectedDelivery *time.Time
	Items            []LineItemInput
}

// LineItem is the read model for an order line.
type LineItem struct {
	ID          uint            `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Order is the read model for an order.
type Order struct {
	ID               uint       `json:"id"`
	OrderNumber      string     `json:"orderNumber"`
	Status           string     `json:"status"`
	SupplierID       *uint      `json:"supplierId,omitempty"`
	SupplierName     string     `json:"supplierName,omitempty"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`
	Items            []LineItem `json:"items"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// StatusResult reports a single status transition.
type StatusResult struct {
	ID       uint     `json:"id"`
	Status   string   `json:"status"`
	Warnings []string `json:"warnings"`
}

// BulkStatusResult reports a bulk status transition.
type BulkStatusResult struct {
	UpdatedCount int      `json:"updatedCount"`
	Warnings     []string `json:"warnings"`
}

// Service owns order lifecycle and fulfillment into inventory.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Order, error)
	Get(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*StatusResult, error)
	BulkUpdateStatus(ctx context.Context, ids []uint, status string) (*BulkStatusResult, error)
	Delete(ctx context.Context, id uint) error
	BulkDelete(ctx context.Context, ids []uint) (int64, error)
	PendingCount(ctx context.Context) (int64, error)
}

type service struct {
	tx    TxRunner
	repo  Repository
	stock StockApplier
	logg  *logger.Logger
}

// NewService wires the orders service.
func NewService(tx TxRunner, repository Repository, stock StockApplier, logg *logger.Logger) Service {
	return &service{tx: tx, repo: repository, stock: stock, logg: logg}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Order, error) {
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	if input.OrderNumber == "" {
		return nil, errors.New(errors.CodeValidation, "order number is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.New(errors.CodeValidation, "an order needs at least one item")
	}
	for i := range input.Items {
		input.Items[i].ProductName = strings.TrimSpace(input.Items[i].ProductName)
		if input.Items[i].ProductName == "" {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("item %d: product name is required", i+1))
		}
		if input.Items[i].Quantity <= 0 {
			return nil, errors.New(errors.CodeValidation, fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
	}

	order := models.Order{
		OrderNumber:      input.OrderNumber,
		Status:           enums.OrderStatusPending,
		SupplierID:       input.SupplierID,
		ExpectedDelivery: input.ExpectedDelivery,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &order); err != nil {
			if db.IsUniqueViolation(err, "") {
				return errors.New(errors.CodeConflict, "an order with this number already exists")
			}
			return errors.Wrap(errors.CodeInternal, err, "creating order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID), "order created")
	result := toOrder(&order)
	return &result, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Order, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "order not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading order")
	}
	result := toOrder(record)
	return &result, nil
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing orders")
	}
	result := make([]Order, 0, len(records))
	for i := range records {
		result = append(result, toOrder(&records[i]))
	}
	return result, nil
}

// UpdateStatus commits the status transition first, in its own transaction.
// Fulfillment into inventory happens afterwards and never rolls the status
// back: a partially received order stays COMPLETED with warnings attached.
func (s *service) UpdateStatus(ctx context.Context, id uint, status string) (*StatusResult, error) {
	target, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, err.Error())
	}

	var order *models.Order
	var previous enums.OrderStatus
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		record, err := txRepo.FindForUpdate(ctx, id)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(errors.CodeNotFound, "order not found")
			}
			return errors.Wrap(errors.CodeInternal, err, "loading order")
		}
		previous = record.Status
		if previous != target {
			if err := txRepo.SetStatus(ctx, record.ID, target); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "updating order status")
			}
			record.Status = target
		}
		order = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	warnings := []string{}
	if previous == enums.OrderStatusPending && target == enums.OrderStatusCompleted {
		warnings = s.fulfill(ctx, order)
	}
	return &StatusResult{ID: order.ID, Status: string(target), Warnings: warnings}, nil
}

// BulkUpdateStatus commits every reachable status change in one transaction,
// then fulfills the pending-to-completed transitions. Missing orders and
// failed line items degrade to warnings rather than failing the batch.
func (s *service) BulkUpdateStatus(ctx context.Context, ids []uint, status string) (*BulkStatusResult, error) {
	target, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, err.Error())
	}
	if len(ids) == 0 {
		return nil, errors.New(errors.CodeValidation, "no order ids provided")
	}

	warnings := []string{}
	var toFulfill []models.Order
	updated := 0
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, id := range ids {
			record, err := txRepo.FindForUpdate(ctx, id)
			if err != nil {
				if stdErrors.Is(err, gorm.ErrRecordNotFound) {
					warnings = append(warnings, fmt.Sprintf("order %d not found", id))
					continue
				}
				return errors.Wrap(errors.CodeInternal, err, "loading order")
			}
			if record.Status == target {
				updated++
				continue
			}
			wasPending := record.Status == enums.OrderStatusPending
			if err := txRepo.SetStatus(ctx, record.ID, target); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "updating order status")
			}
			updated++
			if wasPending && target == enums.OrderStatusCompleted {
				toFulfill = append(toFulfill, *record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range toFulfill {
		warnings = append(warnings, s.fulfill(ctx, &toFulfill[i])...)
	}
	return &BulkStatusResult{UpdatedCount: updated, Warnings: warnings}, nil
}

// fulfill applies each line item in its own transaction so one bad line
// cannot take the rest of the order down with it.
func (s *service) fulfill(ctx context.Context, order *models.Order) []string {
	warnings := []string{}
	var failures error
	for _, item := range order.Items {
		item := item
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return s.stock.ApplyIncrement(ctx, tx, item.ProductName, item.Quantity)
		})
		if err != nil {
			failures = multierr.Append(failures, err)
			warnings = append(warnings, fmt.Sprintf(
				"order %s: item %q not applied: %s",
				order.OrderNumber, item.ProductName, warningMessage(err),
			))
		}
	}
	if failures != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"failed_items": len(multierr.Errors(failures)),
		})
		s.logg.Warn(logCtx, "order fulfillment completed with failed line items")
	}
	return warnings
}

func warningMessage(err error) string {
	if typed := errors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}

func (s *service) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting order")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "order not found")
	}
	return nil
}

func (s *service) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New(errors.CodeValidation, "no order ids provided")
	}
	affected, err := s.repo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "bulk deleting orders")
	}
	return affected, nil
}

func (s *service) PendingCount(ctx context.Context) (int64, error) {
	total, err := s.repo.CountByStatus(ctx, enums.OrderStatusPending)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "counting pending orders")
	}
	return total, nil
}

func toOrder(record *models.Order) Order {
	order := Order{
		ID:               record.ID,
		OrderNumber:      record.OrderNumber,
		Status:           string(record.Status),
		SupplierID:       record.SupplierID,
		ExpectedDelivery: record.ExpectedDelivery,
		Items:            make([]LineItem, 0, len(record.Items)),
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
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
