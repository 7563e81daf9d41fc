package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	"github.com/stockroomhq/stockroom-backend/internal/changelog"
	"github.com/stockroomhq/stockroom-backend/internal/customers"
	"github.com/stockroomhq/stockroom-backend/internal/dashboard"
	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	"github.com/stockroomhq/stockroom-backend/internal/orders"
	"github.com/stockroomhq/stockroom-backend/internal/purchaseorders"
	"github.com/stockroomhq/stockroom-backend/internal/suppliers"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	inventoryService inventory.Service,
	ordersService orders.Service,
	changelogService changelog.Service,
	suppliersService suppliers.Service,
	customersService customers.Service,
	purchaseOrdersService purchaseorders.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.ActingUser(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventoryService, logg))
			r.Post("/", controllers.InventoryCreate(inventoryService, logg))
			r.Post("/bulk-delete", controllers.InventoryBulkDelete(inventoryService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.InventoryGet(inventoryService, logg))
				r.Put("/", controllers.InventoryUpdate(inventoryService, logg))
				r.Delete("/", controllers.InventoryDelete(inventoryService, logg))
				r.Post("/mark-viewed", controllers.InventoryMarkAlertViewed(inventoryService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Post("/", controllers.OrderCreate(ordersService, logg))
			r.Post("/bulk-status", controllers.OrderBulkUpdateStatus(ordersService, logg))
			r.Post("/bulk-delete", controllers.OrderBulkDelete(ordersService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.OrderGet(ordersService, logg))
				r.Delete("/", controllers.OrderDelete(ordersService, logg))
				r.Put("/status", controllers.OrderUpdateStatus(ordersService, logg))
			})
		})

		r.Get("/changelog", controllers.ChangelogList(changelogService, logg))

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.SupplierList(suppliersService, logg))
			r.Post("/", controllers.SupplierCreate(suppliersService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.SupplierGet(suppliersService, logg))
				r.Put("/", controllers.SupplierUpdate(suppliersService, logg))
				r.Delete("/", controllers.SupplierDelete(suppliersService, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(customersService, logg))
			r.Post("/", controllers.CustomerCreate(customersService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.CustomerGet(customersService, logg))
				r.Put("/", controllers.CustomerUpdate(customersService, logg))
				r.Delete("/", controllers.CustomerDelete(customersService, logg))
			})
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", controllers.PurchaseOrderList(purchaseOrdersService, logg))
			r.Post("/", controllers.PurchaseOrderCreate(purchaseOrdersService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.PurchaseOrderGet(purchaseOrdersService, logg))
				r.Delete("/", controllers.PurchaseOrderDelete(purchaseOrdersService, logg))
				r.Post("/receive", controllers.PurchaseOrderMarkReceived(purchaseOrdersService, logg))
			})
		})

		r.Get("/dashboard", controllers.DashboardSummary(dashboardService, logg))
	})

	return r
}
