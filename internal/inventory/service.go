package inventory

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// ChangeRecorder appends a row to the inventory change ledger. Implemented by
// the changelog service; injected to keep the dependency one-directional.
type ChangeRecorder interface {
	RecordChange(ctx context.Context, tx *gorm.DB, itemID uint, oldValue, newValue int, status enums.StockStatus) error
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SaveInput carries the writable fields of an inventory item.
type SaveInput struct {
	Name      string
	Quantity  int
	Threshold int
	Price     decimal.Decimal
}

// SaveResult reports the outcome of a create or update.
type SaveResult struct {
	ID         uint   `json:"id"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
}

// Item is the read model for an inventory item.
type Item struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	Threshold      int             `json:"threshold"`
	Status         int             `json:"status"`
	StatusText     string          `json:"statusText"`
	AlertTriggered bool            `json:"alertTriggered"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CountSummary aggregates inventory counters for the dashboard.
type CountSummary struct {
	Total  int64
	Alerts int64
}

// Service owns inventory item lifecycle and the derived stock status.
type Service interface {
	Create(ctx context.Context, input SaveInput) (*SaveResult, error)
	Update(ctx context.Context, id uint, input SaveInput) (*SaveResult, error)
	Get(ctx context.Context, id uint) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id uint) error
	BulkDelete(ctx context.Context, ids []uint) (int64, error)
	MarkAlertViewed(ctx context.Context, id uint) error
	Counts(ctx context.Context) (CountSummary, error)

	// ApplyIncrement adds received stock to an item inside the caller's
	// transaction, creating the item by name when it does not exist yet.
	ApplyIncrement(ctx context.Context, tx *gorm.DB, productName string, quantity int) error
}

type service struct {
	tx     TxRunner
	repo   Repository
	ledger ChangeRecorder
	logg   *logger.Logger
}

// NewService wires the inventory service.
func NewService(tx TxRunner, repository Repository, ledger ChangeRecorder, logg *logger.Logger) Service {
	return &service{tx: tx, repo: repository, ledger: ledger, logg: logg}
}

func validateSaveInput(input *SaveInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return errors.New(errors.CodeValidation, "item name is required")
	}
	if input.Quantity < 0 {
		return errors.New(errors.CodeValidation, "quantity cannot be negative")
	}
	if input.Threshold < 0 {
		return errors.New(errors.CodeValidation, "threshold cannot be negative")
	}
	if input.Price.IsNegative() {
		return errors.New(errors.CodeValidation, "price cannot be negative")
	}
	return nil
}

func (s *service) Create(ctx context.Context, input SaveInput) (*SaveResult, error) {
	if err := validateSaveInput(&input); err != nil {
		return nil, err
	}

	item := models.InventoryItem{
		Name:      input.Name,
		Quantity:  input.Quantity,
		Threshold: input.Threshold,
		Price:     input.Price,
		Status:    Evaluate(input.Quantity, input.Threshold),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &item); err != nil {
			if db.IsUniqueViolation(err, "") {
				return errors.New(errors.CodeConflict, "an item with this name already exists")
			}
			return errors.Wrap(errors.CodeInternal, err, "creating inventory item")
		}
		if item.Quantity != 0 {
			return s.ledger.RecordChange(ctx, tx, item.ID, 0, item.Quantity, item.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "item_id", item.ID), "inventory item created")
	return &SaveResult{
		ID:         item.ID,
		Status:     int(item.Status),
		StatusText: item.Status.Label(),
	}, nil
}

func (s *service) Update(ctx context.Context, id uint, input SaveInput) (*SaveResult, error) {
	if err := validateSaveInput(&input); err != nil {
		return nil, err
	}

	var result SaveResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		item, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(errors.CodeNotFound, "inventory item not found")
			}
			return errors.Wrap(errors.CodeInternal, err, "loading inventory item")
		}

		oldQuantity := item.Quantity
		item.Name = input.Name
		item.Quantity = input.Quantity
		item.Threshold = input.Threshold
		item.Price = input.Price
		item.Status = Evaluate(item.Quantity, item.Threshold)

		// The flag only ever clears here. Setting it is a deliberate,
		// explicit action by the operator reviewing stock levels.
		if item.AlertTriggered && item.Quantity >= item.Threshold {
			item.AlertTriggered = false
		}

		if err := txRepo.Save(ctx, item); err != nil {
			if db.IsUniqueViolation(err, "") {
				return errors.New(errors.CodeConflict, "an item with this name already exists")
			}
			return errors.Wrap(errors.CodeInternal, err, "saving inventory item")
		}

		if oldQuantity != item.Quantity {
			if err := s.ledger.RecordChange(ctx, tx, item.ID, oldQuantity, item.Quantity, item.Status); err != nil {
				return err
			}
		}

		result = SaveResult{
			ID:         item.ID,
			Status:     int(item.Status),
			StatusText: item.Status.Label(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Item, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "inventory item not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading inventory item")
	}
	item := toItem(record)
	return &item, nil
}

func (s *service) List(ctx context.Context) ([]Item, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing inventory items")
	}
	items := make([]Item, 0, len(records))
	for i := range records {
		items = append(items, toItem(&records[i]))
	}
	return items, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting inventory item")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "inventory item not found")
	}
	return nil
}

func (s *service) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New(errors.CodeValidation, "no item ids provided")
	}
	affected, err := s.repo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, errors.Wrap(errors.CodeInternal, err, "bulk deleting inventory items")
	}
	return affected, nil
}

// MarkAlertViewed clears the alert flag regardless of the current stock
// level. Viewing an alert acknowledges it even while stock stays low.
func (s *service) MarkAlertViewed(ctx context.Context, id uint) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.CodeNotFound, "inventory item not found")
		}
		return errors.Wrap(errors.CodeInternal, err, "loading inventory item")
	}
	if !item.AlertTriggered {
		return nil
	}
	item.AlertTriggered = false
	if err := s.repo.Save(ctx, item); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "clearing inventory alert")
	}
	return nil
}

func (s *service) Counts(ctx context.Context) (CountSummary, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return CountSummary{}, errors.Wrap(errors.CodeInternal, err, "counting inventory items")
	}
	alerts, err := s.repo.CountAlerts(ctx)
	if err != nil {
		return CountSummary{}, errors.Wrap(errors.CodeInternal, err, "counting inventory alerts")
	}
	return CountSummary{Total: total, Alerts: alerts}, nil
}

func (s *service) ApplyIncrement(ctx context.Context, tx *gorm.DB, productName string, quantity int) error {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errors.New(errors.CodeValidation, "product name is required")
	}
	if quantity <= 0 {
		return errors.New(errors.CodeValidation, "increment quantity must be positive")
	}

	txRepo := s.repo.WithTx(tx)
	item, err := txRepo.FindByNameForUpdate(ctx, productName)
	if err != nil {
		if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(errors.CodeInternal, err, "loading inventory item by name")
		}
		item = &models.InventoryItem{
			Name:   productName,
			Status: Evaluate(0, 0),
		}
		if err := txRepo.Create(ctx, item); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "creating inventory item for received stock")
		}
	}

	oldQuantity := item.Quantity
	item.Quantity += quantity
	item.Status = Evaluate(item.Quantity, item.Threshold)
	if item.AlertTriggered && item.Quantity >= item.Threshold {
		item.AlertTriggered = false
	}
	if err := txRepo.Save(ctx, item); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "applying received stock")
	}
	return s.ledger.RecordChange(ctx, tx, item.ID, oldQuantity, item.Quantity, item.Status)
}

func toItem(record *models.InventoryItem) Item {
	return Item{
		ID:             record.ID,
		Name:           record.Name,
		Quantity:       record.Quantity,
		Threshold:      record.Threshold,
		Status:         int(record.Status),
		StatusText:     record.Status.Label(),
		AlertTriggered: record.AlertTriggered,
		Price:          record.Price,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}
