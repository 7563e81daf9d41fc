package inventory

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/changelog"
	"github.com/stockroomhq/stockroom-backend/pkg/actor"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

type txRunner struct {
	db *gorm.DB
}

func (r txRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.ChangelogEntry{},
	))
	return gdb
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	gdb := openTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	ledger := changelog.NewService(changelog.NewRepository(gdb), logg)
	svc := NewService(txRunner{db: gdb}, NewRepository(gdb), ledger, logg)
	return svc, gdb
}

func ledgerEntries(t *testing.T, gdb *gorm.DB) []models.ChangelogEntry {
	t.Helper()
	var entries []models.ChangelogEntry
	require.NoError(t, gdb.Order("id ASC").Find(&entries).Error)
	return entries
}

func TestCreateRecordsInitialQuantity(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 10, Threshold: 5})
	require.NoError(t, err)
	require.Equal(t, int(enums.StockStatusInStock), result.Status)
	require.Equal(t, "In-Stock", result.StatusText)

	entries := ledgerEntries(t, gdb)
	require.Len(t, entries, 1)
	require.Equal(t, 0, entries[0].OldValue)
	require.Equal(t, 10, entries[0].NewValue)
	require.Equal(t, enums.StockStatusInStock, entries[0].Status)
	require.Nil(t, entries[0].UserID)
}

func TestCreateZeroQuantitySkipsLedger(t *testing.T) {
	svc, gdb := newTestService(t)

	result, err := svc.Create(context.Background(), SaveInput{Name: "Widget", Quantity: 0, Threshold: 5})
	require.NoError(t, err)
	require.Equal(t, int(enums.StockStatusOutOfStock), result.Status)

	require.Empty(t, ledgerEntries(t, gdb))
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 1, Threshold: 1})
	require.NoError(t, err)

	_, err = svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 2, Threshold: 1})
	require.Error(t, err)
	require.Equal(t, errors.CodeConflict, errors.As(err).Code())
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), SaveInput{Name: "Widget", Quantity: -1, Threshold: 5})
	require.Error(t, err)
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestUpdateQuantityWritesLedgerWithActor(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	user := models.User{FirstName: "Dana", LastName: "Reyes", Email: "dana@example.com"}
	require.NoError(t, gdb.Create(&user).Error)

	created, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 10, Threshold: 5})
	require.NoError(t, err)

	actingCtx := actor.WithUserID(ctx, user.ID)
	updated, err := svc.Update(actingCtx, created.ID, SaveInput{Name: "Widget", Quantity: 7, Threshold: 5})
	require.NoError(t, err)
	require.Equal(t, int(enums.StockStatusInStock), updated.Status)

	entries := ledgerEntries(t, gdb)
	require.Len(t, entries, 2)
	last := entries[1]
	require.Equal(t, 10, last.OldValue)
	require.Equal(t, 7, last.NewValue)
	require.Equal(t, enums.StockStatusInStock, last.Status)
	require.NotNil(t, last.UserID)
	require.Equal(t, user.ID, *last.UserID)
}

func TestUpdateUnchangedQuantitySkipsLedger(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 10, Threshold: 5})
	require.NoError(t, err)
	require.Len(t, ledgerEntries(t, gdb), 1)

	_, err = svc.Update(ctx, created.ID, SaveInput{Name: "Widget Pro", Quantity: 10, Threshold: 8})
	require.NoError(t, err)

	require.Len(t, ledgerEntries(t, gdb), 1)

	item, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Widget Pro", item.Name)
	require.Equal(t, 8, item.Threshold)
}

func TestUpdateRecomputesStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 10, Threshold: 5})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, SaveInput{Name: "Widget", Quantity: 0, Threshold: 5})
	require.NoError(t, err)
	require.Equal(t, int(enums.StockStatusOutOfStock), updated.Status)
	require.Equal(t, "Out-of-Stock", updated.StatusText)

	updated, err = svc.Update(ctx, created.ID, SaveInput{Name: "Widget", Quantity: 4, Threshold: 0})
	require.NoError(t, err)
	require.Equal(t, int(enums.StockStatusUnknown), updated.Status)
}

func TestUpdateClearsAlertOnRestock(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 2, Threshold: 5})
	require.NoError(t, err)
	require.NoError(t, gdb.Model(&models.InventoryItem{}).
		Where("id = ?", created.ID).
		Update("alert_triggered", true).Error)

	_, err = svc.Update(ctx, created.ID, SaveInput{Name: "Widget", Quantity: 6, Threshold: 5})
	require.NoError(t, err)

	item, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, item.AlertTriggered)
}

func TestUpdateKeepsAlertWhileStillLow(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 2, Threshold: 5})
	require.NoError(t, err)
	require.NoError(t, gdb.Model(&models.InventoryItem{}).
		Where("id = ?", created.ID).
		Update("alert_triggered", true).Error)

	_, err = svc.Update(ctx, created.ID, SaveInput{Name: "Widget", Quantity: 3, Threshold: 5})
	require.NoError(t, err)

	item, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, item.AlertTriggered)
}

func TestUpdateNeverSetsAlert(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 10, Threshold: 5})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, SaveInput{Name: "Widget", Quantity: 1, Threshold: 5})
	require.NoError(t, err)

	item, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, item.Status == int(enums.StockStatusLowStock))
	require.False(t, item.AlertTriggered)
}

func TestMarkAlertViewedClearsRegardlessOfStock(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 1, Threshold: 5})
	require.NoError(t, err)
	require.NoError(t, gdb.Model(&models.InventoryItem{}).
		Where("id = ?", created.ID).
		Update("alert_triggered", true).Error)

	require.NoError(t, svc.MarkAlertViewed(ctx, created.ID))

	item, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, item.AlertTriggered)
	require.Equal(t, int(enums.StockStatusLowStock), item.Status)

	// Already cleared; a second view is a no-op.
	require.NoError(t, svc.MarkAlertViewed(ctx, created.ID))
}

func TestMarkAlertViewedMissingItem(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.MarkAlertViewed(context.Background(), 9999)
	require.Error(t, err)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}

func TestApplyIncrementCreatesMissingItem(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	err := txRunner{db: gdb}.WithTx(ctx, func(tx *gorm.DB) error {
		return svc.ApplyIncrement(ctx, tx, "Widget", 3)
	})
	require.NoError(t, err)

	var item models.InventoryItem
	require.NoError(t, gdb.Where("name = ?", "Widget").First(&item).Error)
	require.Equal(t, 3, item.Quantity)
	require.Equal(t, 0, item.Threshold)
	require.Equal(t, enums.StockStatusUnknown, item.Status)

	entries := ledgerEntries(t, gdb)
	require.Len(t, entries, 1)
	require.Equal(t, 0, entries[0].OldValue)
	require.Equal(t, 3, entries[0].NewValue)
}

func TestApplyIncrementAddsToExistingItem(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 4, Threshold: 5, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	err = txRunner{db: gdb}.WithTx(ctx, func(tx *gorm.DB) error {
		return svc.ApplyIncrement(ctx, tx, "Widget", 3)
	})
	require.NoError(t, err)

	item, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 7, item.Quantity)
	require.Equal(t, int(enums.StockStatusInStock), item.Status)

	entries := ledgerEntries(t, gdb)
	require.Len(t, entries, 2)
	require.Equal(t, 4, entries[1].OldValue)
	require.Equal(t, 7, entries[1].NewValue)
}

func TestApplyIncrementRejectsBadInput(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	err := txRunner{db: gdb}.WithTx(ctx, func(tx *gorm.DB) error {
		return svc.ApplyIncrement(ctx, tx, "", 3)
	})
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())

	err = txRunner{db: gdb}.WithTx(ctx, func(tx *gorm.DB) error {
		return svc.ApplyIncrement(ctx, tx, "Widget", 0)
	})
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestBulkDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 1, Threshold: 1})
	require.NoError(t, err)
	second, err := svc.Create(ctx, SaveInput{Name: "Gadget", Quantity: 1, Threshold: 1})
	require.NoError(t, err)

	deleted, err := svc.BulkDelete(ctx, []uint{first.ID, second.ID, 9999})
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCounts(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, SaveInput{Name: "Widget", Quantity: 1, Threshold: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, SaveInput{Name: "Gadget", Quantity: 9, Threshold: 5})
	require.NoError(t, err)
	require.NoError(t, gdb.Model(&models.InventoryItem{}).
		Where("id = ?", first.ID).
		Update("alert_triggered", true).Error)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), counts.Total)
	require.Equal(t, int64(1), counts.Alerts)
}
