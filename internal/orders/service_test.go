package orders

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/changelog"
	"github.com/stockroomhq/stockroom-backend/internal/inventory"
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

func newTestService(t *testing.T) (Service, inventory.Service, *gorm.DB) {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.ChangelogEntry{},
		&models.Supplier{},
		&models.Order{},
		&models.OrderItem{},
	))

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	runner := txRunner{db: gdb}
	ledger := changelog.NewService(changelog.NewRepository(gdb), logg)
	stock := inventory.NewService(runner, inventory.NewRepository(gdb), ledger, logg)
	svc := NewService(runner, NewRepository(gdb), stock, logg)
	return svc, stock, gdb
}

func createOrder(t *testing.T, svc Service, number string, items ...LineItemInput) *Order {
	t.Helper()
	order, err := svc.Create(context.Background(), CreateInput{
		OrderNumber: number,
		Items:       items,
	})
	require.NoError(t, err)
	return order
}

func itemByName(t *testing.T, gdb *gorm.DB, name string) models.InventoryItem {
	t.Helper()
	var item models.InventoryItem
	require.NoError(t, gdb.Where("name = ?", name).First(&item).Error)
	return item
}

func TestCreatePendingOrderWithItems(t *testing.T) {
	svc, _, _ := newTestService(t)

	order := createOrder(t, svc, "ORD-1001",
		LineItemInput{ProductName: "Widget", Quantity: 3},
		LineItemInput{ProductName: "Gadget", Quantity: 5},
	)
	require.Equal(t, string(enums.OrderStatusPending), order.Status)
	require.Len(t, order.Items, 2)
}

func TestCreateDuplicateOrderNumberConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)

	createOrder(t, svc, "ORD-1001", LineItemInput{ProductName: "Widget", Quantity: 1})

	_, err := svc.Create(context.Background(), CreateInput{
		OrderNumber: "ORD-1001",
		Items:       []LineItemInput{{ProductName: "Widget", Quantity: 1}},
	})
	require.Error(t, err)
	require.Equal(t, errors.CodeConflict, errors.As(err).Code())
}

func TestCreateValidatesItems(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{OrderNumber: "ORD-1"})
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())

	_, err = svc.Create(ctx, CreateInput{
		OrderNumber: "ORD-2",
		Items:       []LineItemInput{{ProductName: "Widget", Quantity: 0}},
	})
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestCompletingPendingOrderAppliesItems(t *testing.T) {
	svc, stock, gdb := newTestService(t)
	ctx := context.Background()

	_, err := stock.Create(ctx, inventory.SaveInput{Name: "Widget", Quantity: 4, Threshold: 5})
	require.NoError(t, err)

	order := createOrder(t, svc, "ORD-1001",
		LineItemInput{ProductName: "Widget", Quantity: 3},
		LineItemInput{ProductName: "Gadget", Quantity: 5},
	)

	result, err := svc.UpdateStatus(ctx, order.ID, "COMPLETED")
	require.NoError(t, err)
	require.Equal(t, "COMPLETED", result.Status)
	require.Empty(t, result.Warnings)

	widget := itemByName(t, gdb, "Widget")
	require.Equal(t, 7, widget.Quantity)
	require.Equal(t, enums.StockStatusInStock, widget.Status)

	gadget := itemByName(t, gdb, "Gadget")
	require.Equal(t, 5, gadget.Quantity)
	require.Equal(t, 0, gadget.Threshold)
	require.Equal(t, enums.StockStatusUnknown, gadget.Status)

	var entries []models.ChangelogEntry
	require.NoError(t, gdb.Order("id ASC").Find(&entries).Error)
	// Seed change plus one entry per applied line.
	require.Len(t, entries, 3)
	require.Equal(t, 0, entries[2].OldValue)
	require.Equal(t, 5, entries[2].NewValue)
}

func TestCompletingTwiceIsIdempotent(t *testing.T) {
	svc, _, gdb := newTestService(t)
	ctx := context.Background()

	order := createOrder(t, svc, "ORD-1001", LineItemInput{ProductName: "Widget", Quantity: 3})

	_, err := svc.UpdateStatus(ctx, order.ID, "COMPLETED")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, order.ID, "COMPLETED")
	require.NoError(t, err)

	require.Equal(t, 3, itemByName(t, gdb, "Widget").Quantity)
}

func TestReopeningCompletedOrderDoesNotTouchInventory(t *testing.T) {
	svc, _, gdb := newTestService(t)
	ctx := context.Background()

	order := createOrder(t, svc, "ORD-1001", LineItemInput{ProductName: "Widget", Quantity: 3})
	_, err := svc.UpdateStatus(ctx, order.ID, "COMPLETED")
	require.NoError(t, err)

	result, err := svc.UpdateStatus(ctx, order.ID, "PENDING")
	require.NoError(t, err)
	require.Equal(t, "PENDING", result.Status)
	require.Empty(t, result.Warnings)

	// Stock received on completion is not clawed back.
	require.Equal(t, 3, itemByName(t, gdb, "Widget").Quantity)
}

func TestCancellingPendingOrderSkipsInventory(t *testing.T) {
	svc, _, gdb := newTestService(t)
	ctx := context.Background()

	order := createOrder(t, svc, "ORD-1001", LineItemInput{ProductName: "Widget", Quantity: 3})

	result, err := svc.UpdateStatus(ctx, order.ID, "CANCELLED")
	require.NoError(t, err)
	require.Equal(t, "CANCELLED", result.Status)

	var count int64
	require.NoError(t, gdb.Model(&models.InventoryItem{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), 1, "SHIPPED")
	require.Equal(t, errors.CodeValidation, errors.As(err).Code())
}

func TestStatusCommitSurvivesFailedLineItem(t *testing.T) {
	svc, _, gdb := newTestService(t)
	ctx := context.Background()

	order := createOrder(t, svc, "ORD-1001", LineItemInput{ProductName: "Widget", Quantity: 3})
	// A line with no product name cannot be applied to inventory.
	require.NoError(t, gdb.Create(&models.OrderItem{OrderID: order.ID, ProductName: "", Quantity: 2}).Error)

	result, err := svc.UpdateStatus(ctx, order.ID, "COMPLETED")
	require.NoError(t, err)
	require.Equal(t, "COMPLETED", result.Status)
	require.Len(t, result.Warnings, 1)

	var record models.Order
	require.NoError(t, gdb.First(&record, order.ID).Error)
	require.Equal(t, enums.OrderStatusCompleted, record.Status)

	// The healthy line was still applied.
	require.Equal(t, 3, itemByName(t, gdb, "Widget").Quantity)
}

func TestBulkUpdateStatusAppliesAllAndAccumulatesWarnings(t *testing.T) {
	svc, _, gdb := newTestService(t)
	ctx := context.Background()

	first := createOrder(t, svc, "ORD-1", LineItemInput{ProductName: "Widget", Quantity: 3})
	second := createOrder(t, svc, "ORD-2", LineItemInput{ProductName: "Gadget", Quantity: 5})
	third := createOrder(t, svc, "ORD-3", LineItemInput{ProductName: "Sprocket", Quantity: 2})
	require.NoError(t, gdb.Delete(&models.OrderItem{}, "order_id = ?", third.ID).Error)
	require.NoError(t, gdb.Create(&models.OrderItem{OrderID: third.ID, ProductName: "", Quantity: 2}).Error)

	result, err := svc.BulkUpdateStatus(ctx, []uint{first.ID, second.ID, third.ID}, "COMPLETED")
	require.NoError(t, err)
	require.Equal(t, 3, result.UpdatedCount)
	require.Len(t, result.Warnings, 1)

	for _, id := range []uint{first.ID, second.ID, third.ID} {
		var record models.Order
		require.NoError(t, gdb.First(&record, id).Error)
		require.Equal(t, enums.OrderStatusCompleted, record.Status)
	}

	require.Equal(t, 3, itemByName(t, gdb, "Widget").Quantity)
	require.Equal(t, 5, itemByName(t, gdb, "Gadget").Quantity)
}

func TestBulkUpdateStatusWarnsOnMissingOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	order := createOrder(t, svc, "ORD-1", LineItemInput{ProductName: "Widget", Quantity: 1})

	result, err := svc.BulkUpdateStatus(ctx, []uint{order.ID, 9999}, "CANCELLED")
	require.NoError(t, err)
	require.Equal(t, 1, result.UpdatedCount)
	require.Len(t, result.Warnings, 1)
	require.Contains(t, result.Warnings[0], "9999")
}

func TestDeleteAndBulkDelete(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first := createOrder(t, svc, "ORD-1", LineItemInput{ProductName: "Widget", Quantity: 1})
	second := createOrder(t, svc, "ORD-2", LineItemInput{ProductName: "Widget", Quantity: 1})

	require.NoError(t, svc.Delete(ctx, first.ID))
	err := svc.Delete(ctx, first.ID)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())

	deleted, err := svc.BulkDelete(ctx, []uint{second.ID, 9999})
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}

func TestPendingCount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	createOrder(t, svc, "ORD-1", LineItemInput{ProductName: "Widget", Quantity: 1})
	second := createOrder(t, svc, "ORD-2", LineItemInput{ProductName: "Widget", Quantity: 1})
	_, err := svc.UpdateStatus(ctx, second.ID, "CANCELLED")
	require.NoError(t, err)

	pending, err := svc.PendingCount(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), pending)
}
