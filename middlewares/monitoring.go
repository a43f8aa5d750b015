package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_service_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bakery_service_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	cartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_service_cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation", "status"},
	)

	authOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_service_auth_operations_total",
			Help: "Total number of auth operations",
		},
		[]string{"operation", "status"},
	)

	inventoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakery_service_inventory_operations_total",
			Help: "Total number of inventory operations",
		},
		[]string{"operation", "status"},
	)

	lowStockItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bakery_service_low_stock_items",
			Help: "Number of catalog items below the low-stock threshold",
		},
	)
)

// PrometheusMiddleware 收集 Prometheus 指标
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Observe(duration)
	}
}

// RecordCartOperation 记录购物车操作指标
func RecordCartOperation(operation string, success bool) {
	cartOperations.WithLabelValues(operation, statusLabel(success)).Inc()
}

// RecordAuthOperation 记录认证操作指标
func RecordAuthOperation(operation string, success bool) {
	authOperations.WithLabelValues(operation, statusLabel(success)).Inc()
}

// RecordInventoryOperation 记录库存操作指标
func RecordInventoryOperation(operation string, success bool) {
	inventoryOperations.WithLabelValues(operation, statusLabel(success)).Inc()
}

// SetLowStockItems 更新低库存商品数量
func SetLowStockItems(count int) {
	lowStockItems.Set(float64(count))
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
