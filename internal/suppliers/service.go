package suppliers

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// SaveInput carries the writable fields of a supplier.
type SaveInput struct {
	Name         string
	ContactEmail string
	Phone        string
	Address      string
}

// Supplier is the read model for a supplier.
type Supplier struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Service owns supplier records.
type Service interface {
	Create(ctx context.Context, input SaveInput) (*Supplier, error)
	Update(ctx context.Context, id uint, input SaveInput) (*Supplier, error)
	Get(ctx context.Context, id uint) (*Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService wires the supplier service.
func NewService(repository Repository) Service {
	return &service{repo: repository}
}

func (s *service) Create(ctx context.Context, input SaveInput) (*Supplier, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errors.New(errors.CodeValidation, "supplier name is required")
	}

	record := models.Supplier{
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		Phone:        input.Phone,
		Address:      input.Address,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, errors.New(errors.CodeConflict, "a supplier with this name already exists")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "creating supplier")
	}
	result := toSupplier(&record)
	return &result, nil
}

func (s *service) Update(ctx context.Context, id uint, input SaveInput) (*Supplier, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errors.New(errors.CodeValidation, "supplier name is required")
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "supplier not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading supplier")
	}

	record.Name = input.Name
	record.ContactEmail = input.ContactEmail
	record.Phone = input.Phone
	record.Address = input.Address
	if err := s.repo.Save(ctx, record); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, errors.New(errors.CodeConflict, "a supplier with this name already exists")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "saving supplier")
	}
	result := toSupplier(record)
	return &result, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Supplier, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "supplier not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading supplier")
	}
	result := toSupplier(record)
	return &result, nil
}

func (s *service) List(ctx context.Context) ([]Supplier, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing suppliers")
	}
	result := make([]Supplier, 0, len(records))
	for i := range records {
		result = append(result, toSupplier(&records[i]))
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return errors.New(errors.CodeStateConflict, "supplier is referenced by existing records")
		}
		return errors.Wrap(errors.CodeInternal, err, "deleting supplier")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "supplier not found")
	}
	return nil
}

func toSupplier(record *models.Supplier) Supplier {
	return Supplier{
		ID:           record.ID,
		Name:         record.Name,
		ContactEmail: record.ContactEmail,
		Phone:        record.Phone,
		Address:      record.Address,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}
