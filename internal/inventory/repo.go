package inventory

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository persists inventory items.
type Repository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	Save(ctx context.Context, item *models.InventoryItem) error
	FindByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	FindByName(ctx context.Context, name string) (*models.InventoryItem, error)
	FindByNameForUpdate(ctx context.Context, name string) (*models.InventoryItem, error)
	List(ctx context.Context) ([]models.InventoryItem, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountAlerts(ctx context.Context) (int64, error)
	WithTx(tx *gorm.DB) Repository
}

type gormRepository struct {
	repo.Base
}

// NewRepository builds the GORM-backed inventory repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(db)}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(tx)}
}

func (r *gormRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *gormRepository) Save(ctx context.Context, item *models.InventoryItem) error {
	return r.DB(ctx).Save(item).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) FindByName(ctx context.Context, name string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB(ctx).Where("name = ?", name).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) FindByNameForUpdate(ctx context.Context, name string) (*models.InventoryItem, error) {
	query := r.DB(ctx)
	// sqlite has no row locks; the clause would fail to parse there.
	if query.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var item models.InventoryItem
	if err := query.Where("name = ?", name).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.DB(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	result := r.DB(ctx).Delete(&models.InventoryItem{}, id)
	return result.RowsAffected, result.Error
}

func (r *gormRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.DB(ctx).Where("id IN ?", ids).Delete(&models.InventoryItem{})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB(ctx).Model(&models.InventoryItem{}).Count(&total).Error
	return total, err
}

func (r *gormRepository) CountAlerts(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("alert_triggered = ?", true).
		Count(&total).Error
	return total, err
}
