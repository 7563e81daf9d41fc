package changelog

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/actor"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// unknownActorLabel is shown when an entry has no surviving user reference.
const unknownActorLabel = "not available"

// Entry is the read model for one recorded quantity change.
type Entry struct {
	ID         uint      `json:"id"`
	ItemID     uint      `json:"itemId"`
	ItemName   string    `json:"itemName"`
	OldValue   int       `json:"oldValue"`
	NewValue   int       `json:"newValue"`
	Status     int       `json:"status"`
	StatusText string    `json:"statusText"`
	ChangedBy  string    `json:"changedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Service records quantity changes and exposes the ledger read side.
// Entries are append-only; nothing in the API mutates or deletes them.
type Service interface {
	RecordChange(ctx context.Context, tx *gorm.DB, itemID uint, oldValue, newValue int, status enums.StockStatus) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the changelog service.
func NewService(repository Repository, logg *logger.Logger) Service {
	return &service{repo: repository, logg: logg}
}

// RecordChange appends a ledger row inside the caller's transaction. Writes
// where the quantity did not move are skipped so reads stay meaningful.
func (s *service) RecordChange(ctx context.Context, tx *gorm.DB, itemID uint, oldValue, newValue int, status enums.StockStatus) error {
	if oldValue == newValue {
		return nil
	}

	entry := models.ChangelogEntry{
		ItemID:   itemID,
		OldValue: oldValue,
		NewValue: newValue,
		Status:   status,
	}
	if userID, ok := actor.UserID(ctx); ok {
		entry.UserID = &userID
	}

	repository := s.repo
	if tx != nil {
		repository = s.repo.WithTx(tx)
	}
	if err := repository.Create(ctx, &entry); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "recording inventory change")
	}
	return nil
}

// List returns recent entries, newest first.
func (s *service) List(ctx context.Context, limit int) ([]Entry, error) {
	records, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing inventory changes")
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, Entry{
			ID:         record.ID,
			ItemID:     record.ItemID,
			ItemName:   record.Item.Name,
			OldValue:   record.OldValue,
			NewValue:   record.NewValue,
			Status:     int(record.Status),
			StatusText: record.Status.Label(),
			ChangedBy:  actorLabel(record.User),
			CreatedAt:  record.CreatedAt,
		})
	}
	return entries, nil
}

func actorLabel(user *models.User) string {
	if user == nil {
		return unknownActorLabel
	}
	name := strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
	if name != "" {
		return name
	}
	if email := strings.TrimSpace(user.Email); email != "" {
		return email
	}
	return unknownActorLabel
}
