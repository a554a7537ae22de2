package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records the counters and histograms exposed by the API.
type StorefrontMetrics struct {
	requestDuration    *prometheus.HistogramVec
	cartOps            *prometheus.CounterVec
	ordersPlaced       *prometheus.CounterVec
	notifyFailures     prometheus.Counter
	catalogIntegrity   prometheus.Counter
	checkoutRejections *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully persisted, by mode.",
	}, []string{"mode"})
	notifyFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_notification_failures_total",
		Help: "Best-effort order notifications that failed to send.",
	})
	catalogIntegrity := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_integrity_warnings_total",
		Help: "Catalog items rejected by the load-time validation pass.",
	})
	checkoutRejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejections_total",
		Help: "Checkout attempts rejected before persistence.",
	}, []string{"reason"})
	reg.MustRegister(requestDuration, cartOps, ordersPlaced, notifyFailures, catalogIntegrity, checkoutRejections)
	return &StorefrontMetrics{
		requestDuration:    requestDuration,
		cartOps:            cartOps,
		ordersPlaced:       ordersPlaced,
		notifyFailures:     notifyFailures,
		catalogIntegrity:   catalogIntegrity,
		checkoutRejections: checkoutRejections,
	}
}

// ObserveRequest records one HTTP request.
func (m *StorefrontMetrics) ObserveRequest(method, route, status string, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// IncCartOp counts a cart mutation (add, update, remove, clear).
func (m *StorefrontMetrics) IncCartOp(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncOrderPlaced counts a persisted order.
func (m *StorefrontMetrics) IncOrderPlaced(mode string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(mode)).Inc()
}

// IncNotifyFailure counts a failed best-effort notification.
func (m *StorefrontMetrics) IncNotifyFailure() {
	if m == nil || m.notifyFailures == nil {
		return
	}
	m.notifyFailures.Inc()
}

// IncCatalogIntegrityWarning counts a catalog item dropped at load time.
func (m *StorefrontMetrics) IncCatalogIntegrityWarning() {
	if m == nil || m.catalogIntegrity == nil {
		return
	}
	m.catalogIntegrity.Inc()
}

// IncCheckoutRejection counts a checkout rejected before persistence.
func (m *StorefrontMetrics) IncCheckoutRejection(reason string) {
	if m == nil || m.checkoutRejections == nil {
		return
	}
	m.checkoutRejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
