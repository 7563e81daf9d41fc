package purchaseorders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB, models.Supplier) {
	t.Helper()
	dsn := "file:purchaseorders_" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.Supplier{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.InventoryItem{},
	))
	supplier := models.Supplier{Name: "Acme Supply"}
	require.NoError(t, gdb.Create(&supplier).Error)
	return NewService(NewRepository(gdb)), gdb, supplier
}

func TestCreateComputesTotalCost(t *testing.T) {
	svc, _, supplier := newTestService(t)

	order, err := svc.Create(context.Background(), CreateInput{
		OrderNumber: "PO-1001",
		SupplierID:  supplier.ID,
		Items: []LineItemInput{
			{ProductName: "Widget", Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")},
			{ProductName: "Gadget", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)
	require.True(t, order.TotalCost.Equal(decimal.RequireFromString("27.50")))
	require.False(t, order.Received)
	require.Len(t, order.Items, 2)
}

func TestCreateDuplicateNumberConflicts(t *testing.T) {
	svc, _, supplier := newTestService(t)
	ctx := context.Background()

	input := CreateInput{
		OrderNumber: "PO-1001",
		SupplierID:  supplier.ID,
		Items:       []LineItemInput{{ProductName: "Widget", Quantity: 1}},
	}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	require.Equal(t, errors.CodeConflict, errors.As(err).Code())
}

func TestMarkReceivedIsBookkeepingOnly(t *testing.T) {
	svc, gdb, supplier := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		OrderNumber: "PO-1001",
		SupplierID:  supplier.ID,
		Items:       []LineItemInput{{ProductName: "Widget", Quantity: 5}},
	})
	require.NoError(t, err)

	received, err := svc.MarkReceived(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, received.Received)

	// Idempotent.
	received, err = svc.MarkReceived(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, received.Received)

	// Receiving never creates or adjusts inventory.
	var count int64
	require.NoError(t, gdb.Model(&models.InventoryItem{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMarkReceivedMissingOrder(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.MarkReceived(context.Background(), 9999)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}

func TestDelete(t *testing.T) {
	svc, _, supplier := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		OrderNumber: "PO-1001",
		SupplierID:  supplier.ID,
		Items:       []LineItemInput{{ProductName: "Widget", Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	require.Equal(t, errors.CodeNotFound, errors.As(err).Code())
}
