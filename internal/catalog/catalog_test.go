package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	loaded, warnings, err := Load()
	if err != nil {
		t.Fatalf("loading seed catalog: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("seed catalog should be clean, got warnings: %v", warnings)
	}
	return loaded
}

func TestLoadSeedCatalog(t *testing.T) {
	t.Parallel()

	loaded := mustLoad(t)

	delivery := loaded.List(enums.ModeDelivery, Filter{})
	wholesale := loaded.List(enums.ModeWholesale, Filter{})
	if len(delivery) != 6 {
		t.Fatalf("expected 6 delivery items, got %d", len(delivery))
	}
	if len(wholesale) != 16 {
		t.Fatalf("expected 16 wholesale items, got %d", len(wholesale))
	}

	oface, err := loaded.Get("oface")
	if err != nil {
		t.Fatalf("oface missing: %v", err)
	}
	weighted, ok := oface.Pricing.(WeightPricing)
	if !ok {
		t.Fatalf("oface should be weight-priced, got %T", oface.Pricing)
	}
	if got := weighted.Weights[enums.WeightQuarter]; !got.Equal(decimal.NewFromInt(65)) {
		t.Fatalf("oface quarter price = %s, want 65", got)
	}

	cart, err := loaded.Get("lean-cup-cart")
	if err != nil {
		t.Fatalf("lean-cup-cart missing: %v", err)
	}
	if _, ok := cart.Pricing.(FlatPricing); !ok {
		t.Fatalf("lean-cup-cart should be flat-priced, got %T", cart.Pricing)
	}
	if cart.MaxPerLine != 1 {
		t.Fatalf("lean-cup-cart max per line = %d, want 1", cart.MaxPerLine)
	}
	if len(cart.Flavors) != 3 {
		t.Fatalf("lean-cup-cart should carry 3 flavors, got %d", len(cart.Flavors))
	}
}

func TestLoadSortsTiersAscending(t *testing.T) {
	t.Parallel()

	loaded := mustLoad(t)
	item, err := loaded.Get("w1")
	if err != nil {
		t.Fatalf("w1 missing: %v", err)
	}

	tiered, ok := item.Pricing.(TierPricing)
	if !ok {
		t.Fatalf("w1 should be tier-priced, got %T", item.Pricing)
	}
	if tiered.MinOrderQty != 10 {
		t.Fatalf("w1 minimum order = %d, want 10", tiered.MinOrderQty)
	}
	for i := 1; i < len(tiered.Tiers); i++ {
		if tiered.Tiers[i-1].MinQty >= tiered.Tiers[i].MinQty {
			t.Fatalf("tiers not strictly ascending: %+v", tiered.Tiers)
		}
	}
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	loaded := mustLoad(t)

	flower := loaded.List(enums.ModeWholesale, Filter{Category: enums.CategoryFlower})
	for _, item := range flower {
		if item.Category != enums.CategoryFlower {
			t.Fatalf("category filter leaked %s", item.ID)
		}
	}
	if len(flower) != 6 {
		t.Fatalf("expected 6 wholesale flower items, got %d", len(flower))
	}

	sativa := loaded.List(enums.ModeWholesale, Filter{Classifier: enums.ClassifierSativa})
	if len(sativa) != 4 {
		t.Fatalf("expected 4 wholesale sativa items, got %d", len(sativa))
	}
}

func TestGetForModeRejectsCrossMode(t *testing.T) {
	t.Parallel()

	loaded := mustLoad(t)

	if _, err := loaded.GetForMode(enums.ModeDelivery, "w1"); err == nil {
		t.Fatal("wholesale item should be invisible in delivery mode")
	}
	if _, err := loaded.GetForMode(enums.ModeWholesale, "w1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := loaded.Get("no-such-item")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestBuildItemIntegrityWarnings(t *testing.T) {
	t.Parallel()

	flat := decimal.NewFromInt(10)
	cases := []struct {
		name string
		seed seedItem
	}{
		{
			name: "no pricing shape",
			seed: seedItem{ID: "x", Name: "X"},
		},
		{
			name: "both weight and tier tables",
			seed: seedItem{
				ID:       "x",
				Name:     "X",
				Category: "flower",
				Weights:  map[string]decimal.Decimal{"eighth": flat},
				Tiers:    []seedTier{{MinQty: 10, Price: flat}},
			},
		},
		{
			name: "duplicate tier minimum",
			seed: seedItem{
				ID:       "x",
				Name:     "X",
				Category: "flower",
				Tiers: []seedTier{
					{MinQty: 10, Price: flat, Label: "10+"},
					{MinQty: 10, Price: decimal.NewFromInt(8), Label: "also 10+"},
				},
			},
		},
		{
			name: "unknown weight code",
			seed: seedItem{
				ID:       "x",
				Name:     "X",
				Category: "flower",
				Weights:  map[string]decimal.Decimal{"gram": flat},
			},
		},
		{
			name: "non-positive flat price",
			seed: seedItem{ID: "x", Name: "X", Category: "vapes", Price: &decimal.Zero},
		},
		{
			name: "duplicate flavor name",
			seed: seedItem{
				ID:       "x",
				Name:     "X",
				Category: "vapes",
				Price:    &flat,
				Flavors: []seedFlavor{
					{Name: "Grape"},
					{Name: "Grape"},
				},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.seed.Classifier == "" {
				tc.seed.Classifier = "hybrid"
			}
			if tc.seed.Category == "" {
				tc.seed.Category = "flower"
			}
			item, warning := buildItem(enums.ModeDelivery, tc.seed)
			if warning == nil {
				t.Fatalf("expected integrity warning, got item %+v", item)
			}
		})
	}
}

func TestMinOrderQtyDefaultsToOne(t *testing.T) {
	t.Parallel()

	loaded := mustLoad(t)

	oface, _ := loaded.Get("oface")
	if got := oface.MinOrderQty(); got != 1 {
		t.Fatalf("weighted item minimum order = %d, want 1", got)
	}

	w6, _ := loaded.Get("w6")
	if got := w6.MinOrderQty(); got != 50 {
		t.Fatalf("w6 minimum order = %d, want 50", got)
	}
}
