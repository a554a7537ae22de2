package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/westcoasttreez/storefront-backend/pkg/config"
)

const (
	sendPath                    = "/api/v1.0/email/send"
	responseBodyReadLimit int64 = 1024
)

var errRelayNotConfigured = errors.New("notification relay credentials are required")

// Client posts order notifications to an EmailJS-compatible relay. The relay
// is best-effort: callers treat send failures as log-only events.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the relay client from config. Returns an error when the
// relay credentials are missing; callers decide whether that disables
// notifications or aborts startup.
func NewClient(cfg config.NotifyConfig, opts ...Option) (*Client, error) {
	if !cfg.Enabled() {
		return nil, errRelayNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
	}
	if client.baseURL == "" {
		client.baseURL = "https://api.emailjs.com"
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// OrderSummary carries the human-readable fields rendered into the
// notification template.
type OrderSummary struct {
	OrderNumber    string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Mode           string
	ItemsText      string
	Total          string
	PaymentMethod  string
	Address        string
	Company        string
	Notes          string
	DeliveryWindow string
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams map[string]any `json:"template_params"`
}

// SendOrderPlaced posts the order summary to the relay.
func (c *Client) SendOrderPlaced(ctx context.Context, summary OrderSummary) error {
	payload := sendRequest{
		ServiceID:  c.serviceID,
		TemplateID: c.templateID,
		UserID:     c.publicKey,
		TemplateParams: map[string]any{
			"order_number":    summary.OrderNumber,
			"customer_name":   summary.CustomerName,
			"customer_email":  summary.CustomerEmail,
			"customer_phone":  summary.CustomerPhone,
			"mode":            summary.Mode,
			"items_text":      summary.ItemsText,
			"total":           summary.Total,
			"payment_method":  summary.PaymentMethod,
			"address":         summary.Address,
			"company":         orDefault(summary.Company, "N/A"),
			"notes":           orDefault(summary.Notes, "None"),
			"delivery_window": orDefault(summary.DeliveryWindow, "N/A"),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return fmt.Errorf("notification relay returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
