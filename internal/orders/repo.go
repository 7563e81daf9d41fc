package orders

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

// Repository persists orders and their line items.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindForUpdate(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	SetStatus(ctx context.Context, id uint, status enums.OrderStatus) error
	DeleteByID(ctx context.Context, id uint) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error)
	WithTx(tx *gorm.DB) Repository
}

type gormRepository struct {
	repo.Base
}

// NewRepository builds the GORM-backed orders repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(db)}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(tx)}
}

func (r *gormRepository) Create(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Create(order).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items").
		Preload("Supplier").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) FindForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	query := r.DB(ctx)
	// sqlite has no row locks; the clause would fail to parse there.
	if query.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var order models.Order
	if err := query.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRepository) List(ctx context.Context) ([]models.Order, error) {
	var records []models.Order
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

func (r *gormRepository) SetStatus(ctx context.Context, id uint, status enums.OrderStatus) error {
	return r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *gormRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	result := r.DB(ctx).Delete(&models.Order{}, id)
	return result.RowsAffected, result.Error
}

func (r *gormRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.DB(ctx).Where("id IN ?", ids).Delete(&models.Order{})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error) {
	var total int64
	err := r.DB(ctx).
		Model(&models.Order{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}
