package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
)

// Line is one cart entry. Identity is mode + item + flavor + weight: the same
// item added with a different weight or flavor lands on a separate line.
type Line struct {
	Key        string          `json:"key"`
	Mode       enums.Mode      `json:"mode"`
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	FlavorName string          `json:"flavor,omitempty"`
	Weight     enums.Weight    `json:"weight,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`

	item *catalog.Item
}

// LineKey builds the identity key for a prospective line.
func LineKey(mode enums.Mode, itemID, flavorName string, weight enums.Weight) string {
	return strings.Join([]string{mode.String(), itemID, flavorName, weight.String()}, "|")
}

// Detail is the human-readable variant label used on order summaries: the
// weight label for weighted lines, the flavor for flavored ones.
func (l *Line) Detail() string {
	switch {
	case l.Weight != "":
		return l.Weight.Label()
	case l.FlavorName != "":
		return l.FlavorName
	default:
		return ""
	}
}
