package customers

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// SaveInput carries the writable fields of a customer.
type SaveInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Customer is the read model for a customer.
type Customer struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service owns customer records.
type Service interface {
	Create(ctx context.Context, input SaveInput) (*Customer, error)
	Update(ctx context.Context, id uint, input SaveInput) (*Customer, error)
	Get(ctx context.Context, id uint) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService wires the customer service.
func NewService(repository Repository) Service {
	return &service{repo: repository}
}

func (s *service) Create(ctx context.Context, input SaveInput) (*Customer, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errors.New(errors.CodeValidation, "customer name is required")
	}

	record := models.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating customer")
	}
	result := toCustomer(&record)
	return &result, nil
}

func (s *service) Update(ctx context.Context, id uint, input SaveInput) (*Customer, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errors.New(errors.CodeValidation, "customer name is required")
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "customer not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading customer")
	}

	record.Name = input.Name
	record.Email = input.Email
	record.Phone = input.Phone
	record.Address = input.Address
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "saving customer")
	}
	result := toCustomer(record)
	return &result, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Customer, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "customer not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading customer")
	}
	result := toCustomer(record)
	return &result, nil
}

func (s *service) List(ctx context.Context) ([]Customer, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing customers")
	}
	result := make([]Customer, 0, len(records))
	for i := range records {
		result = append(result, toCustomer(&records[i]))
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting customer")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "customer not found")
	}
	return nil
}

func toCustomer(record *models.Customer) Customer {
	return Customer{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
		Address:   record.Address,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
