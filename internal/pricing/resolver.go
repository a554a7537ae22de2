package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

// Selection carries the buyer's per-line choices. Weight applies only to
// weight-priced items, FlavorName only to flavor-variant items.
type Selection struct {
	Weight     enums.Weight
	FlavorName string
}

// UnitPrice resolves the per-unit price of an item for a selection and
// quantity. It is a pure function of its inputs: the same item, selection,
// and quantity always resolve to the same price.
func UnitPrice(item *catalog.Item, sel Selection, quantity int) (decimal.Decimal, error) {
	if item == nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidSelection, "item is required")
	}
	if quantity < 1 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidSelection, "quantity must be at least 1")
	}

	if sel.FlavorName != "" {
		if _, ok := item.Flavor(sel.FlavorName); !ok {
			return decimal.Zero, pkgerrors.New(
				pkgerrors.CodeInvalidSelection,
				fmt.Sprintf("item %s has no flavor %q", item.ID, sel.FlavorName),
			).WithDetails(flavorDetails(item))
		}
	}

	switch shape := item.Pricing.(type) {
	case catalog.WeightPricing:
		if sel.Weight == "" {
			return decimal.Zero, pkgerrors.New(
				pkgerrors.CodeInvalidSelection,
				fmt.Sprintf("item %s is priced by weight, a weight is required", item.ID),
			).WithDetails(weightDetails(shape))
		}
		price, ok := shape.Weights[sel.Weight]
		if !ok {
			return decimal.Zero, pkgerrors.New(
				pkgerrors.CodeInvalidSelection,
				fmt.Sprintf("item %s has no %s option", item.ID, sel.Weight),
			).WithDetails(weightDetails(shape))
		}
		return price, nil

	case catalog.TierPricing:
		if sel.Weight != "" {
			return decimal.Zero, pkgerrors.New(
				pkgerrors.CodeInvalidSelection,
				fmt.Sprintf("item %s is priced by volume, not weight", item.ID),
			)
		}
		if len(shape.Tiers) == 0 {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("item %s has an empty tier table", item.ID))
		}
		return tierUnitPrice(shape, quantity), nil

	case catalog.FlatPricing:
		if sel.Weight != "" {
			return decimal.Zero, pkgerrors.New(
				pkgerrors.CodeInvalidSelection,
				fmt.Sprintf("item %s has a single price, not weight options", item.ID),
			)
		}
		return shape.Base, nil

	default:
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("item %s has no pricing shape", item.ID))
	}
}

// LineTotal resolves the unit price and multiplies it out.
func LineTotal(item *catalog.Item, sel Selection, quantity int) (decimal.Decimal, error) {
	unit, err := UnitPrice(item, sel, quantity)
	if err != nil {
		return decimal.Zero, err
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// tierUnitPrice picks the deepest tier the quantity qualifies for. Quantities
// below every tier pay the entry tier's price; the minimum-order rule is a
// checkout concern, not a pricing one.
func tierUnitPrice(shape catalog.TierPricing, quantity int) decimal.Decimal {
	// Tiers are sorted ascending by MinQty at load time.
	price := shape.Tiers[0].UnitPrice
	for _, tier := range shape.Tiers {
		if quantity < tier.MinQty {
			break
		}
		price = tier.UnitPrice
	}
	return price
}

// ActiveTier reports which tier a quantity resolves to, for display alongside
// the price. The boolean is false when the quantity sits below every tier.
func ActiveTier(item *catalog.Item, quantity int) (catalog.Tier, bool) {
	shape, ok := item.Pricing.(catalog.TierPricing)
	if !ok || len(shape.Tiers) == 0 {
		return catalog.Tier{}, false
	}
	var active catalog.Tier
	found := false
	for _, tier := range shape.Tiers {
		if quantity < tier.MinQty {
			break
		}
		active = tier
		found = true
	}
	return active, found
}

func weightDetails(shape catalog.WeightPricing) map[string]any {
	allowed := make([]string, 0, len(shape.Weights))
	for code := range shape.Weights {
		allowed = append(allowed, code.String())
	}
	return map[string]any{"allowed_weights": allowed}
}

func flavorDetails(item *catalog.Item) map[string]any {
	allowed := make([]string, 0, len(item.Flavors))
	for _, flavor := range item.Flavors {
		allowed = append(allowed, flavor.Name)
	}
	return map[string]any{"allowed_flavors": allowed}
}
