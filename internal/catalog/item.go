package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/pkg/enums"
)

// Pricing is the tagged union of the three pricing shapes an item can carry.
// Exactly one shape applies to any item; the loader rejects catalog data that
// violates this.
type Pricing interface {
	pricingShape() string
}

// FlatPricing charges a single unit price regardless of quantity or flavor.
type FlatPricing struct {
	Base decimal.Decimal
}

func (FlatPricing) pricingShape() string { return "flat" }

// WeightPricing charges by the selected weight code.
type WeightPricing struct {
	Weights map[enums.Weight]decimal.Decimal
}

func (WeightPricing) pricingShape() string { return "by_weight" }

// Tier is one volume-pricing step: orders of MinQty or more units pay
// UnitPrice per unit, until a higher tier applies.
type Tier struct {
	MinQty    int
	UnitPrice decimal.Decimal
	Label     string
}

// TierPricing charges by quantity against an ordered tier table. MinOrderQty
// is the smallest legal first order; the cart surface applies it on first add
// and checkout re-validates it.
type TierPricing struct {
	Tiers       []Tier
	MinOrderQty int
}

func (TierPricing) pricingShape() string { return "by_tier" }

// Flavor is a selectable variant of a flat-priced item. Flavors change the
// displayed THC content and description, never the price.
type Flavor struct {
	Name        string
	Description string
	THC         string
	Emoji       string
	Classifier  enums.Classifier
}

// Item is one sellable catalog entry. Items are immutable after load.
type Item struct {
	ID          string
	Name        string
	Mode        enums.Mode
	Category    enums.Category
	Classifier  enums.Classifier
	THC         string
	Description string
	ImageURL    string
	InStock     bool
	Badge       string
	Brand       string

	// Retail is the suggested retail price shown alongside wholesale tiers.
	Retail decimal.Decimal

	Pricing Pricing

	// Flavors is non-empty only for flavor-variant items.
	Flavors []Flavor

	// MaxPerLine caps the quantity of a single cart line; zero means uncapped.
	MaxPerLine int
}

// Flavor returns the named flavor variant, if the item carries one.
func (i *Item) Flavor(name string) (Flavor, bool) {
	for _, flavor := range i.Flavors {
		if flavor.Name == name {
			return flavor, true
		}
	}
	return Flavor{}, false
}

// MinOrderQty returns the tier-pricing minimum order, or 1 for every other
// pricing shape.
func (i *Item) MinOrderQty() int {
	if tiered, ok := i.Pricing.(TierPricing); ok && tiered.MinOrderQty > 0 {
		return tiered.MinOrderQty
	}
	return 1
}
