package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/westcoasttreez/storefront-backend/pkg/config"
)

func configured(baseURL string) config.NotifyConfig {
	return config.NotifyConfig{
		BaseURL:    baseURL,
		ServiceID:  "svc_1",
		TemplateID: "tpl_1",
		PublicKey:  "pk_1",
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(config.NotifyConfig{BaseURL: "https://api.emailjs.com"}); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestSendOrderPlacedPostsTemplateParams(t *testing.T) {
	t.Parallel()

	var captured sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != sendPath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(configured(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.SendOrderPlaced(context.Background(), OrderSummary{
		OrderNumber:   "WCT-1756600000000",
		CustomerName:  "Jess",
		CustomerEmail: "jess@example.com",
		Mode:          "Delivery",
		ItemsText:     "OFace - eighth x1 = $35.00",
		Total:         "$35.00",
		PaymentMethod: "cashapp",
		Address:       "1 Main St, Carlsbad, CA 92008",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if captured.ServiceID != "svc_1" || captured.UserID != "pk_1" {
		t.Fatalf("credentials not forwarded: %+v", captured)
	}
	if captured.TemplateParams["order_number"] != "WCT-1756600000000" {
		t.Fatalf("order number missing: %v", captured.TemplateParams)
	}
	if captured.TemplateParams["company"] != "N/A" || captured.TemplateParams["notes"] != "None" {
		t.Fatalf("blank optional fields should default: %v", captured.TemplateParams)
	}
}

func TestSendOrderPlacedSurfacesRelayFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad template", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(configured(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := client.SendOrderPlaced(context.Background(), OrderSummary{}); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}
