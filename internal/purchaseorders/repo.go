package purchaseorders

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository persists purchase orders.
type Repository interface {
	Create(ctx context.Context, order *models.PurchaseOrder) error
	Save(ctx context.Context, order *models.PurchaseOrder) error
	FindByID(ctx context.Context, id uint) (*models.PurchaseOrder, error)
	List(ctx context.Context) ([]models.PurchaseOrder, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
}

type gormRepository struct {
	repo.Base
}

// NewRepository builds the GORM-backed purchase order repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(db)}
}

func (r *gormRepository) Create(ctx context.Context, order *models.PurchaseOrder) error {
	return r.DB(ctx).Create(order).Error
}

func (r *gormRepository) Save(ctx context.Context, order *models.PurchaseOrder) error {
	return r.DB(ctx).Save(order).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := r.DB(ctx).
		Preload("Items").
		Preload("Supplier").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) List(ctx context.Context) ([]models.PurchaseOrder, error) {
	var records []models.PurchaseOrder
	err := r.DB(ctx).
		Preload("Items").
		Preload("Supplier").
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	result := r.DB(ctx).Delete(&models.PurchaseOrder{}, id)
	return result.RowsAffected, result.Error
}
