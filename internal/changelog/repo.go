package changelog

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository persists and reads changelog entries.
type Repository interface {
	Create(ctx context.Context, entry *models.ChangelogEntry) error
	ListRecent(ctx context.Context, limit int) ([]models.ChangelogEntry, error)
	WithTx(tx *gorm.DB) Repository
}

type gormRepository struct {
	repo.Base
}

// NewRepository builds the GORM-backed changelog repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(db)}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(tx)}
}

func (r *gormRepository) Create(ctx context.Context, entry *models.ChangelogEntry) error {
	return r.DB(ctx).Create(entry).Error
}

func (r *gormRepository) ListRecent(ctx context.Context, limit int) ([]models.ChangelogEntry, error) {
	var entries []models.ChangelogEntry
	query := r.DB(ctx).
		Preload("Item").
		Preload("User").
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
