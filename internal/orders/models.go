package orders

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/pkg/enums"
)

// Order is one placed order. The primary key is the human-facing order
// number, e.g. WCT-1756600000000.
type Order struct {
	ID             string               `gorm:"primaryKey" json:"id"`
	SessionID      string               `gorm:"index;not null" json:"-"`
	Mode           enums.Mode           `gorm:"not null" json:"mode"`
	CustomerName   string               `gorm:"not null" json:"customer_name"`
	CustomerEmail  string               `gorm:"not null" json:"customer_email"`
	CustomerPhone  string               `gorm:"not null" json:"customer_phone"`
	Street         string               `json:"street"`
	City           string               `json:"city"`
	State          string               `json:"state"`
	Zip            string               `json:"zip"`
	Company        string               `json:"company,omitempty"`
	PaymentMethod  enums.PaymentMethod  `gorm:"not null" json:"payment_method"`
	DeliveryWindow enums.DeliveryWindow `json:"delivery_window,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	Total          decimal.Decimal      `gorm:"type:numeric(12,2);not null" json:"total"`
	PlacedAt       time.Time            `gorm:"index;not null" json:"placed_at"`
	CreatedAt      time.Time            `json:"-"`
	UpdatedAt      time.Time            `json:"-"`

	LineItems []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"line_items"`
}

// OrderLineItem is one priced line frozen at checkout time.
type OrderLineItem struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"index;not null" json:"-"`
	ItemID    string          `gorm:"not null" json:"item_id"`
	Name      string          `gorm:"not null" json:"name"`
	Detail    string          `json:"detail,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
	CreatedAt time.Time       `json:"-"`
}

// NewOrderID formats the order number from the placement instant, millisecond
// precision. Collisions within the same millisecond surface as key conflicts
// and the caller retries.
func NewOrderID(placedAt time.Time) string {
	return fmt.Sprintf("WCT-%d", placedAt.UnixMilli())
}
