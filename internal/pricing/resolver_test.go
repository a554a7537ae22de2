package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

func weightedItem() *catalog.Item {
	return &catalog.Item{
		ID:   "oface",
		Name: "OFace",
		Mode: enums.ModeDelivery,
		Pricing: catalog.WeightPricing{Weights: map[enums.Weight]decimal.Decimal{
			enums.WeightEighth:  decimal.NewFromInt(35),
			enums.WeightQuarter: decimal.NewFromInt(65),
			enums.WeightHalf:    decimal.NewFromInt(120),
			enums.WeightOunce:   decimal.NewFromInt(220),
		}},
	}
}

func tieredItem() *catalog.Item {
	return &catalog.Item{
		ID:   "w1",
		Name: "Blue Dream THCa Flower",
		Mode: enums.ModeWholesale,
		Pricing: catalog.TierPricing{
			MinOrderQty: 10,
			Tiers: []catalog.Tier{
				{MinQty: 10, UnitPrice: decimal.NewFromInt(28), Label: "10+ units"},
				{MinQty: 50, UnitPrice: decimal.NewFromInt(22), Label: "50+ units"},
				{MinQty: 100, UnitPrice: decimal.NewFromInt(18), Label: "100+ units"},
			},
		},
	}
}

func flavoredItem() *catalog.Item {
	return &catalog.Item{
		ID:      "lean-cup-cart",
		Name:    "Lean Cup Cart",
		Mode:    enums.ModeDelivery,
		Pricing: catalog.FlatPricing{Base: decimal.NewFromInt(80)},
		Flavors: []catalog.Flavor{
			{Name: "Grape Lean"},
			{Name: "OG Lean"},
		},
	}
}

func assertInvalidSelection(t *testing.T, err error) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInvalidSelection {
		t.Fatalf("expected INVALID_SELECTION, got %v", err)
	}
}

func TestUnitPriceByWeight(t *testing.T) {
	t.Parallel()

	item := weightedItem()

	price, err := UnitPrice(item, Selection{Weight: enums.WeightQuarter}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.Equal(decimal.NewFromInt(65)) {
		t.Fatalf("quarter price = %s, want 65", price)
	}

	// Quantity never changes a weight-priced unit price.
	again, err := UnitPrice(item, Selection{Weight: enums.WeightQuarter}, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Equal(price) {
		t.Fatalf("weight price should ignore quantity, got %s then %s", price, again)
	}

	_, err = UnitPrice(item, Selection{}, 1)
	assertInvalidSelection(t, err)

	_, err = UnitPrice(item, Selection{Weight: "gram"}, 1)
	assertInvalidSelection(t, err)
}

func TestUnitPriceByTier(t *testing.T) {
	t.Parallel()

	item := tieredItem()

	cases := []struct {
		quantity int
		want     int64
	}{
		{quantity: 1, want: 28},
		{quantity: 9, want: 28},
		{quantity: 10, want: 28},
		{quantity: 49, want: 28},
		{quantity: 50, want: 22},
		{quantity: 99, want: 22},
		{quantity: 100, want: 18},
		{quantity: 5000, want: 18},
	}
	for _, tc := range cases {
		price, err := UnitPrice(item, Selection{}, tc.quantity)
		if err != nil {
			t.Fatalf("qty %d: unexpected error: %v", tc.quantity, err)
		}
		if !price.Equal(decimal.NewFromInt(tc.want)) {
			t.Fatalf("qty %d: price = %s, want %d", tc.quantity, price, tc.want)
		}
	}
}

func TestUnitPriceEmptyTierTable(t *testing.T) {
	t.Parallel()

	item := &catalog.Item{
		ID:      "w0",
		Name:    "Unpriced",
		Mode:    enums.ModeWholesale,
		Pricing: catalog.TierPricing{MinOrderQty: 10},
	}

	_, err := UnitPrice(item, Selection{}, 10)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %v", err)
	}
}

func TestTierPriceNeverIncreasesWithQuantity(t *testing.T) {
	t.Parallel()

	item := tieredItem()
	previous := decimal.NewFromInt(1 << 30)
	for quantity := 1; quantity <= 300; quantity++ {
		price, err := UnitPrice(item, Selection{}, quantity)
		if err != nil {
			t.Fatalf("qty %d: unexpected error: %v", quantity, err)
		}
		if price.GreaterThan(previous) {
			t.Fatalf("unit price rose from %s to %s at qty %d", previous, price, quantity)
		}
		previous = price
	}
}

func TestUnitPriceFlatAndFlavors(t *testing.T) {
	t.Parallel()

	item := flavoredItem()

	plain, err := UnitPrice(item, Selection{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flavored, err := UnitPrice(item, Selection{FlavorName: "Grape Lean"}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plain.Equal(flavored) || !plain.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("flavor must not change price: plain %s, flavored %s", plain, flavored)
	}

	_, err = UnitPrice(item, Selection{FlavorName: "Bubblegum"}, 1)
	assertInvalidSelection(t, err)

	_, err = UnitPrice(item, Selection{Weight: enums.WeightEighth}, 1)
	assertInvalidSelection(t, err)
}

func TestUnitPriceRejectsBadQuantity(t *testing.T) {
	t.Parallel()

	_, err := UnitPrice(weightedItem(), Selection{Weight: enums.WeightEighth}, 0)
	assertInvalidSelection(t, err)

	_, err = UnitPrice(nil, Selection{}, 1)
	assertInvalidSelection(t, err)
}

func TestLineTotal(t *testing.T) {
	t.Parallel()

	total, err := LineTotal(tieredItem(), Selection{}, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("50 units at 22 = %s, want 1100", total)
	}
}

func TestActiveTier(t *testing.T) {
	t.Parallel()

	item := tieredItem()

	tier, ok := ActiveTier(item, 120)
	if !ok || tier.MinQty != 100 {
		t.Fatalf("qty 120 should land on the 100+ tier, got %+v ok=%v", tier, ok)
	}

	if _, ok := ActiveTier(item, 4); ok {
		t.Fatal("quantity below every tier should report no active tier")
	}
	if _, ok := ActiveTier(weightedItem(), 10); ok {
		t.Fatal("weight-priced items have no tiers")
	}
}
