package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var m *StorefrontMetrics
	m.ObserveRequest("GET", "/api/v1/cart", "200", time.Second)
	m.IncCartOp("add")
	m.IncOrderPlaced("delivery")
	m.IncNotifyFailure()
	m.IncCatalogIntegrityWarning()
	m.IncCheckoutRejection("empty_cart")
}

func TestNilRegistererProducesNoopMetrics(t *testing.T) {
	t.Parallel()

	m := NewStorefrontMetrics(nil)
	m.IncCartOp("add")
	m.IncOrderPlaced("wholesale")
}

func TestCountersIncrement(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.IncOrderPlaced("delivery")
	m.IncOrderPlaced("delivery")
	m.IncOrderPlaced("")
	m.IncNotifyFailure()

	if got := testutil.ToFloat64(m.ordersPlaced.WithLabelValues("delivery")); got != 2 {
		t.Fatalf("expected 2 delivery orders, got %v", got)
	}
	if got := testutil.ToFloat64(m.ordersPlaced.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty mode to normalize to unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.notifyFailures); got != 1 {
		t.Fatalf("expected 1 notify failure, got %v", got)
	}
}
