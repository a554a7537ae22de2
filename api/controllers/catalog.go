package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/api/middleware"
	"github.com/westcoasttreez/storefront-backend/api/responses"
	"github.com/westcoasttreez/storefront-backend/api/validators"
	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
)

type tierResponse struct {
	MinQty    int             `json:"min_qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Label     string          `json:"label,omitempty"`
}

type pricingResponse struct {
	Type     string                           `json:"type"`
	Base     *decimal.Decimal                 `json:"base,omitempty"`
	Weights  map[enums.Weight]decimal.Decimal `json:"weights,omitempty"`
	Tiers    []tierResponse                   `json:"tiers,omitempty"`
	MinOrder int                              `json:"min_order,omitempty"`
}

type flavorResponse struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	THC         string           `json:"thc,omitempty"`
	Emoji       string           `json:"emoji,omitempty"`
	Classifier  enums.Classifier `json:"classifier,omitempty"`
}

type itemResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Mode        enums.Mode       `json:"mode"`
	Category    enums.Category   `json:"category"`
	Classifier  enums.Classifier `json:"classifier"`
	THC         string           `json:"thc,omitempty"`
	Description string           `json:"description,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	InStock     bool             `json:"in_stock"`
	Badge       string           `json:"badge,omitempty"`
	Brand       string           `json:"brand,omitempty"`
	Retail      *decimal.Decimal `json:"retail,omitempty"`
	Pricing     pricingResponse  `json:"pricing"`
	Flavors     []flavorResponse `json:"flavors,omitempty"`
	MaxPerLine  int              `json:"max_per_line,omitempty"`
}

func toItemResponse(item *catalog.Item) itemResponse {
	out := itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Mode:        item.Mode,
		Category:    item.Category,
		Classifier:  item.Classifier,
		THC:         item.THC,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		InStock:     item.InStock,
		Badge:       item.Badge,
		Brand:       item.Brand,
		MaxPerLine:  item.MaxPerLine,
	}
	if !item.Retail.IsZero() {
		retail := item.Retail
		out.Retail = &retail
	}

	switch shape := item.Pricing.(type) {
	case catalog.FlatPricing:
		base := shape.Base
		out.Pricing = pricingResponse{Type: "flat", Base: &base}
	case catalog.WeightPricing:
		out.Pricing = pricingResponse{Type: "by_weight", Weights: shape.Weights}
	case catalog.TierPricing:
		tiers := make([]tierResponse, 0, len(shape.Tiers))
		for _, tier := range shape.Tiers {
			tiers = append(tiers, tierResponse{MinQty: tier.MinQty, UnitPrice: tier.UnitPrice, Label: tier.Label})
		}
		out.Pricing = pricingResponse{Type: "by_tier", Tiers: tiers, MinOrder: shape.MinOrderQty}
	}

	for _, flavor := range item.Flavors {
		out.Flavors = append(out.Flavors, flavorResponse{
			Name:        flavor.Name,
			Description: flavor.Description,
			THC:         flavor.THC,
			Emoji:       flavor.Emoji,
			Classifier:  flavor.Classifier,
		})
	}
	return out
}

// CatalogList serves the mode's item listing with optional category and
// classifier filters. Mode defaults to the session's active mode.
func CatalogList(cat *catalog.Catalog, modes activeModeSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		mode, err := validators.ParseQueryMode(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if mode == "" {
			mode, err = browseMode(ctx, modes, middleware.SessionIDFromContext(ctx))
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		category, err := validators.ParseQueryCategory(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		classifier, err := validators.ParseQueryClassifier(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items := cat.List(mode, catalog.Filter{Category: category, Classifier: classifier})
		out := make([]itemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, toItemResponse(item))
		}
		responses.WriteSuccess(w, map[string]any{"mode": mode, "items": out})
	}
}

// CatalogItem serves one item by id. With ?mode= the lookup is scoped to that
// mode's partition.
func CatalogItem(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		itemID := chi.URLParam(r, "itemId")

		mode, err := validators.ParseQueryMode(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var item *catalog.Item
		if mode != "" {
			item, err = cat.GetForMode(mode, itemID)
		} else {
			item, err = cat.Get(itemID)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toItemResponse(item))
	}
}
