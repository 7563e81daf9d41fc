package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	"github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

// InventoryCounter supplies inventory counters for the summary.
type InventoryCounter interface {
	Counts(ctx context.Context) (inventory.CountSummary, error)
}

// PendingCounter supplies the count of orders awaiting fulfillment.
type PendingCounter interface {
	PendingCount(ctx context.Context) (int64, error)
}

// Cache is the subset of the redis client used for summary caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Summary is the dashboard read model.
type Summary struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalAlerts   int64 `json:"totalAlerts"`
	PendingOrders int64 `json:"pendingOrders"`
}

// Service aggregates counters for the dashboard, with a short-lived cache in
// front so the landing page does not hammer the database.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	inventory InventoryCounter
	orders    PendingCounter
	cache     Cache
	ttl       time.Duration
	logg      *logger.Logger
}

// NewService wires the dashboard service. The cache may be nil, in which case
// every call hits the database.
func NewService(inv InventoryCounter, ord PendingCounter, cache Cache, ttl time.Duration, logg *logger.Logger) Service {
	return &service{inventory: inv, orders: ord, cache: cache, ttl: ttl, logg: logg}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	counts, err := s.inventory.Counts(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.orders.PendingCount(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalProducts: counts.Total,
		TotalAlerts:   counts.Alerts,
		PendingOrders: pending,
	}
	s.toCache(ctx, summary)
	return summary, nil
}

func (s *service) fromCache(ctx context.Context) *Summary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey("dashboard", "summary"))
	if err != nil {
		if !redis.IsMiss(err) {
			s.logg.Warn(ctx, "dashboard cache read failed")
		}
		return nil
	}
	var summary Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *service) toCache(ctx context.Context, summary *Summary) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		s.logg.Error(ctx, "marshaling dashboard summary", errors.Wrap(errors.CodeInternal, err, "marshal summary"))
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey("dashboard", "summary"), payload, s.ttl); err != nil {
		s.logg.Warn(ctx, "dashboard cache write failed")
	}
}
