package customers

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository persists customers.
type Repository interface {
	Create(ctx context.Context, customer *models.Customer) error
	Save(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
}

type gormRepository struct {
	repo.Base
}

// NewRepository builds the GORM-backed customer repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(db)}
}

func (r *gormRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.DB(ctx).Create(customer).Error
}

func (r *gormRepository) Save(ctx context.Context, customer *models.Customer) error {
	return r.DB(ctx).Save(customer).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.DB(ctx).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *gormRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	result := r.DB(ctx).Delete(&models.Customer{}, id)
	return result.RowsAffected, result.Error
}
