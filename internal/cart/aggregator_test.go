package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	"github.com/westcoasttreez/storefront-backend/internal/pricing"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

func ofaceItem() *catalog.Item {
	return &catalog.Item{
		ID:   "oface",
		Name: "OFace",
		Mode: enums.ModeDelivery,
		Pricing: catalog.WeightPricing{Weights: map[enums.Weight]decimal.Decimal{
			enums.WeightEighth:  decimal.NewFromInt(35),
			enums.WeightQuarter: decimal.NewFromInt(65),
		}},
	}
}

func blueDreamItem() *catalog.Item {
	return &catalog.Item{
		ID:   "w1",
		Name: "Blue Dream THCa Flower",
		Mode: enums.ModeWholesale,
		Pricing: catalog.TierPricing{
			MinOrderQty: 10,
			Tiers: []catalog.Tier{
				{MinQty: 10, UnitPrice: decimal.NewFromInt(28)},
				{MinQty: 50, UnitPrice: decimal.NewFromInt(22)},
				{MinQty: 100, UnitPrice: decimal.NewFromInt(18)},
			},
		},
	}
}

func cappedItem() *catalog.Item {
	return &catalog.Item{
		ID:         "lean-cup-cart",
		Name:       "Lean Cup Cart",
		Mode:       enums.ModeDelivery,
		Pricing:    catalog.FlatPricing{Base: decimal.NewFromInt(80)},
		MaxPerLine: 1,
	}
}

func TestAddMergesByIdentityKey(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	item := ofaceItem()

	first, err := agg.Add(item, pricing.Selection{Weight: enums.WeightEighth}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := agg.Add(item, pricing.Selection{Weight: enums.WeightEighth}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Key != second.Key {
		t.Fatalf("same selection must share a key: %s vs %s", first.Key, second.Key)
	}
	if second.Quantity != 3 {
		t.Fatalf("merged quantity = %d, want 3", second.Quantity)
	}
	if got := len(agg.Lines("")); got != 1 {
		t.Fatalf("expected 1 line after merge, got %d", got)
	}
}

func TestDifferentWeightMakesDistinctLines(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	item := ofaceItem()

	if _, err := agg.Add(item, pricing.Selection{Weight: enums.WeightEighth}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := agg.Add(item, pricing.Selection{Weight: enums.WeightQuarter}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := agg.Lines(enums.ModeDelivery)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := agg.ItemCount(enums.ModeDelivery); got != 2 {
		t.Fatalf("item count = %d, want 2", got)
	}
	if total := agg.Total(enums.ModeDelivery); !total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("total = %s, want 100", total)
	}
}

func TestAddRepricesAcrossTierBoundary(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	item := blueDreamItem()

	line, err := agg.Add(item, pricing.Selection{}, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(28)) {
		t.Fatalf("qty 30 unit price = %s, want 28", line.UnitPrice)
	}

	// Merging to 60 crosses the 50+ tier.
	line, err = agg.Add(item, pricing.Selection{}, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(22)) {
		t.Fatalf("qty 60 unit price = %s, want 22", line.UnitPrice)
	}
	if !line.LineTotal.Equal(decimal.NewFromInt(1320)) {
		t.Fatalf("line total = %s, want 1320", line.LineTotal)
	}
}

func TestUpdateQuantityRepricesAndRemoves(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	item := blueDreamItem()
	line, err := agg.Add(item, pricing.Selection{}, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("qty 120 unit price = %s, want 18", line.UnitPrice)
	}

	// Dropping back below the 100+ tier must re-resolve, not reuse.
	updated, exists, err := agg.UpdateQuantity(line.Key, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("line should still exist")
	}
	if !updated.UnitPrice.Equal(decimal.NewFromInt(28)) {
		t.Fatalf("qty 40 unit price = %s, want 28", updated.UnitPrice)
	}

	_, exists, err = agg.UpdateQuantity(line.Key, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("zero quantity should remove the line")
	}
	if got := len(agg.Lines("")); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}

	_, _, err = agg.UpdateQuantity(line.Key, 5)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for removed line, got %v", err)
	}
}

func TestAddClampsToMaxPerLine(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	item := cappedItem()

	line, err := agg.Add(item, pricing.Selection{}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Quantity != 1 {
		t.Fatalf("capped quantity = %d, want 1", line.Quantity)
	}

	line, err = agg.Add(item, pricing.Selection{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Quantity != 1 {
		t.Fatalf("merge should stay capped, got %d", line.Quantity)
	}
}

func TestFailedAddLeavesCartIntact(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	item := ofaceItem()
	if _, err := agg.Add(item, pricing.Selection{Weight: enums.WeightEighth}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := agg.Add(item, pricing.Selection{Weight: "gram"}, 1); err == nil {
		t.Fatal("expected invalid weight to fail")
	}
	if got := agg.ItemCount(""); got != 1 {
		t.Fatalf("failed add should not mutate cart, count = %d", got)
	}
}

func TestModeIsolation(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	if _, err := agg.Add(ofaceItem(), pricing.Selection{Weight: enums.WeightEighth}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := agg.Add(blueDreamItem(), pricing.Selection{}, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := agg.ItemCount(enums.ModeDelivery); got != 1 {
		t.Fatalf("delivery count = %d, want 1", got)
	}
	if got := agg.ItemCount(enums.ModeWholesale); got != 10 {
		t.Fatalf("wholesale count = %d, want 10", got)
	}

	agg.ClearMode(enums.ModeWholesale)
	if got := agg.ItemCount(enums.ModeWholesale); got != 0 {
		t.Fatalf("wholesale should be empty, count = %d", got)
	}
	if got := agg.ItemCount(enums.ModeDelivery); got != 1 {
		t.Fatalf("clearing wholesale must not touch delivery, count = %d", got)
	}

	agg.Clear()
	if got := agg.ItemCount(""); got != 0 {
		t.Fatalf("cart should be empty, count = %d", got)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	line, err := agg.Add(ofaceItem(), pricing.Selection{Weight: enums.WeightEighth}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := agg.Remove(line.Key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := agg.Remove(line.Key); err == nil {
		t.Fatal("second remove should report not found")
	}
}
