package dashboard

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

type fakeInventoryCounter struct {
	counts inventory.CountSummary
	calls  int
}

func (f *fakeInventoryCounter) Counts(context.Context) (inventory.CountSummary, error) {
	f.calls++
	return f.counts, nil
}

type fakePendingCounter struct {
	pending int64
	calls   int
}

func (f *fakePendingCounter) PendingCount(context.Context) (int64, error) {
	f.calls++
	return f.pending, nil
}

type fakeCache struct {
	store map[string]string
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	value, ok := f.store[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.sets++
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	}
	return nil
}

func (f *fakeCache) CacheKey(parts ...string) string {
	return "test:" + strings.Join(parts, ":")
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestSummaryAggregatesCounters(t *testing.T) {
	inv := &fakeInventoryCounter{counts: inventory.CountSummary{Total: 12, Alerts: 3}}
	ord := &fakePendingCounter{pending: 4}
	svc := NewService(inv, ord, nil, 30*time.Second, testLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), summary.TotalProducts)
	require.Equal(t, int64(3), summary.TotalAlerts)
	require.Equal(t, int64(4), summary.PendingOrders)
}

func TestSummaryUsesCacheOnSecondCall(t *testing.T) {
	inv := &fakeInventoryCounter{counts: inventory.CountSummary{Total: 12, Alerts: 3}}
	ord := &fakePendingCounter{pending: 4}
	cache := newFakeCache()
	svc := NewService(inv, ord, cache, 30*time.Second, testLogger())
	ctx := context.Background()

	first, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	// Counters drift, but the cached summary is returned.
	inv.counts.Total = 99
	second, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, first.TotalProducts, second.TotalProducts)
	require.Equal(t, 1, inv.calls)
	require.Equal(t, 1, ord.calls)
}

func TestSummaryIgnoresCorruptCacheEntry(t *testing.T) {
	inv := &fakeInventoryCounter{counts: inventory.CountSummary{Total: 2, Alerts: 1}}
	ord := &fakePendingCounter{pending: 0}
	cache := newFakeCache()
	cache.store[cache.CacheKey("dashboard", "summary")] = "{not json"
	svc := NewService(inv, ord, cache, 30*time.Second, testLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), summary.TotalProducts)
	require.Equal(t, 1, inv.calls)
}
