package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/pkg/enums"
)

//go:embed seed/delivery.json
var deliverySeed []byte

//go:embed seed/wholesale.json
var wholesaleSeed []byte

// IntegrityWarning flags a seed entry that violated a catalog invariant and
// was dropped from the loaded catalog. Warnings are surfaced, never silently
// resolved.
type IntegrityWarning struct {
	ItemID string
	Reason string
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf("catalog item %q: %s", w.ItemID, w.Reason)
}

type seedTier struct {
	MinQty int             `json:"min_qty"`
	Price  decimal.Decimal `json:"price"`
	Label  string          `json:"label"`
}

type seedFlavor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	THC         string `json:"thc"`
	Emoji       string `json:"emoji"`
	Classifier  string `json:"classifier"`
}

type seedItem struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Category    string                     `json:"category"`
	Classifier  string                     `json:"classifier"`
	Price       *decimal.Decimal           `json:"price"`
	Retail      decimal.Decimal            `json:"retail"`
	THC         string                     `json:"thc"`
	Description string                     `json:"description"`
	ImageURL    string                     `json:"image_url"`
	InStock     bool                       `json:"in_stock"`
	Badge       string                     `json:"badge"`
	Brand       string                     `json:"brand"`
	Weights     map[string]decimal.Decimal `json:"weights"`
	Tiers       []seedTier                 `json:"tiers"`
	MinOrder    int                        `json:"min_order"`
	MaxQuantity int                        `json:"max_quantity"`
	Flavors     []seedFlavor               `json:"flavors"`
}

// Load decodes the embedded seed files into a Catalog. Entries that violate
// an invariant are dropped and reported as warnings; a malformed seed file is
// a hard error.
func Load() (*Catalog, []IntegrityWarning, error) {
	catalog := &Catalog{items: make(map[string]*Item)}
	var warnings []IntegrityWarning

	for _, source := range []struct {
		mode enums.Mode
		raw  []byte
	}{
		{enums.ModeDelivery, deliverySeed},
		{enums.ModeWholesale, wholesaleSeed},
	} {
		var seeds []seedItem
		if err := json.Unmarshal(source.raw, &seeds); err != nil {
			return nil, nil, fmt.Errorf("decoding %s seed: %w", source.mode, err)
		}

		for _, seed := range seeds {
			item, warning := buildItem(source.mode, seed)
			if warning != nil {
				warnings = append(warnings, *warning)
				continue
			}
			if _, exists := catalog.items[item.ID]; exists {
				warnings = append(warnings, IntegrityWarning{ItemID: item.ID, Reason: "duplicate item id"})
				continue
			}
			catalog.items[item.ID] = item
			catalog.ordered = append(catalog.ordered, item)
		}
	}

	return catalog, warnings, nil
}

func buildItem(mode enums.Mode, seed seedItem) (*Item, *IntegrityWarning) {
	warn := func(reason string) (*Item, *IntegrityWarning) {
		return nil, &IntegrityWarning{ItemID: seed.ID, Reason: reason}
	}

	if seed.ID == "" {
		return warn("missing id")
	}
	if seed.Name == "" {
		return warn("missing name")
	}

	category, err := enums.ParseCategory(seed.Category)
	if err != nil {
		return warn(err.Error())
	}
	classifier, err := enums.ParseClassifier(seed.Classifier)
	if err != nil {
		return warn(err.Error())
	}

	pricing, reason := buildPricing(seed)
	if reason != "" {
		return warn(reason)
	}

	item := &Item{
		ID:          seed.ID,
		Name:        seed.Name,
		Mode:        mode,
		Category:    category,
		Classifier:  classifier,
		THC:         seed.THC,
		Description: seed.Description,
		ImageURL:    seed.ImageURL,
		InStock:     seed.InStock,
		Badge:       seed.Badge,
		Brand:       seed.Brand,
		Retail:      seed.Retail,
		Pricing:     pricing,
		MaxPerLine:  seed.MaxQuantity,
	}

	for _, flavor := range seed.Flavors {
		if flavor.Name == "" {
			return warn("flavor variant missing name")
		}
		flavorClassifier := classifier
		if flavor.Classifier != "" {
			flavorClassifier, err = enums.ParseClassifier(flavor.Classifier)
			if err != nil {
				return warn(fmt.Sprintf("flavor %q: %s", flavor.Name, err))
			}
		}
		if _, duplicate := item.Flavor(flavor.Name); duplicate {
			return warn(fmt.Sprintf("duplicate flavor %q", flavor.Name))
		}
		item.Flavors = append(item.Flavors, Flavor{
			Name:        flavor.Name,
			Description: flavor.Description,
			THC:         flavor.THC,
			Emoji:       flavor.Emoji,
			Classifier:  flavorClassifier,
		})
	}

	return item, nil
}

// buildPricing maps a seed entry onto exactly one pricing shape. The reason
// string is empty on success.
func buildPricing(seed seedItem) (Pricing, string) {
	hasWeights := len(seed.Weights) > 0
	hasTiers := len(seed.Tiers) > 0
	hasFlat := seed.Price != nil

	switch {
	case hasWeights && hasTiers:
		return nil, "carries both a weight table and a tier table"
	case hasWeights:
		weights := make(map[enums.Weight]decimal.Decimal, len(seed.Weights))
		for code, price := range seed.Weights {
			weight, err := enums.ParseWeight(code)
			if err != nil {
				return nil, err.Error()
			}
			if !price.IsPositive() {
				return nil, fmt.Sprintf("weight %s has non-positive price", code)
			}
			weights[weight] = price
		}
		return WeightPricing{Weights: weights}, ""
	case hasTiers:
		tiers := make([]Tier, 0, len(seed.Tiers))
		seen := make(map[int]bool, len(seed.Tiers))
		for _, tier := range seed.Tiers {
			if tier.MinQty < 1 {
				return nil, fmt.Sprintf("tier %q has min quantity below 1", tier.Label)
			}
			if !tier.Price.IsPositive() {
				return nil, fmt.Sprintf("tier %q has non-positive price", tier.Label)
			}
			if seen[tier.MinQty] {
				return nil, fmt.Sprintf("duplicate tier at min quantity %d", tier.MinQty)
			}
			seen[tier.MinQty] = true
			tiers = append(tiers, Tier{MinQty: tier.MinQty, UnitPrice: tier.Price, Label: tier.Label})
		}
		sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinQty < tiers[j].MinQty })
		return TierPricing{Tiers: tiers, MinOrderQty: seed.MinOrder}, ""
	case hasFlat:
		if !seed.Price.IsPositive() {
			return nil, "flat price is non-positive"
		}
		return FlatPricing{Base: *seed.Price}, ""
	default:
		return nil, "no pricing shape"
	}
}
