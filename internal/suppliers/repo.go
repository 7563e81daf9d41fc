package suppliers

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository persists suppliers.
type Repository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	Save(ctx context.Context, supplier *models.Supplier) error
	FindByID(ctx context.Context, id uint) (*models.Supplier, error)
	List(ctx context.Context) ([]models.Supplier, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
}

type gormRepository struct {
	repo.Base
}

// NewRepository builds the GORM-backed supplier repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(db)}
}

func (r *gormRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	return r.DB(ctx).Create(supplier).Error
}

func (r *gormRepository) Save(ctx context.Context, supplier *models.Supplier) error {
	return r.DB(ctx).Save(supplier).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.DB(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *gormRepository) List(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.DB(ctx).Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *gormRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	result := r.DB(ctx).Delete(&models.Supplier{}, id)
	return result.RowsAffected, result.Error
}
