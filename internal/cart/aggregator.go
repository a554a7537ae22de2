package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	"github.com/westcoasttreez/storefront-backend/internal/pricing"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

// Aggregator holds one session's cart lines across both modes. Totals and
// counts are always recomputed from current lines, never cached: a quantity
// edit that crosses a tier boundary re-resolves the unit price.
//
// The aggregator is not safe for concurrent use; Store serializes access.
type Aggregator struct {
	lines []*Line
}

// NewAggregator returns an empty cart.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add merges the selection into the cart by identity key and returns the
// resulting line. Quantities are clamped to the item's per-line cap.
func (a *Aggregator) Add(item *catalog.Item, sel pricing.Selection, quantity int) (Line, error) {
	if item == nil {
		return Line{}, pkgerrors.New(pkgerrors.CodeInvalidSelection, "item is required")
	}
	if quantity < 1 {
		return Line{}, pkgerrors.New(pkgerrors.CodeInvalidSelection, "quantity must be at least 1")
	}

	key := LineKey(item.Mode, item.ID, sel.FlavorName, sel.Weight)
	line := a.find(key)
	merged := quantity
	if line != nil {
		merged += line.Quantity
	}
	merged = clamp(item, merged)

	// Resolve before mutating so an invalid selection leaves the cart intact.
	unit, err := pricing.UnitPrice(item, sel, merged)
	if err != nil {
		return Line{}, err
	}

	if line == nil {
		line = &Line{
			Key:        key,
			Mode:       item.Mode,
			ItemID:     item.ID,
			ItemName:   item.Name,
			FlavorName: sel.FlavorName,
			Weight:     sel.Weight,
			item:       item,
		}
		a.lines = append(a.lines, line)
	}
	line.Quantity = merged
	line.UnitPrice = unit
	line.LineTotal = unit.Mul(decimal.NewFromInt(int64(merged)))
	return *line, nil
}

// UpdateQuantity sets a line's quantity. Zero or below removes the line; the
// returned boolean reports whether the line still exists.
func (a *Aggregator) UpdateQuantity(key string, quantity int) (Line, bool, error) {
	line := a.find(key)
	if line == nil {
		return Line{}, false, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cart line %s not found", key))
	}
	if quantity <= 0 {
		a.remove(key)
		return Line{}, false, nil
	}

	quantity = clamp(line.item, quantity)
	unit, err := pricing.UnitPrice(line.item, pricing.Selection{Weight: line.Weight, FlavorName: line.FlavorName}, quantity)
	if err != nil {
		return Line{}, false, err
	}
	line.Quantity = quantity
	line.UnitPrice = unit
	line.LineTotal = unit.Mul(decimal.NewFromInt(int64(quantity)))
	return *line, true, nil
}

// Remove deletes a line by key.
func (a *Aggregator) Remove(key string) error {
	if !a.remove(key) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cart line %s not found", key))
	}
	return nil
}

// Clear empties the cart across both modes.
func (a *Aggregator) Clear() {
	a.lines = nil
}

// ClearMode removes only the given mode's lines, leaving the other mode's
// cart untouched.
func (a *Aggregator) ClearMode(mode enums.Mode) {
	kept := a.lines[:0]
	for _, line := range a.lines {
		if line.Mode != mode {
			kept = append(kept, line)
		}
	}
	a.lines = kept
}

// Lines returns copies of the mode's lines in insertion order. An empty mode
// returns every line.
func (a *Aggregator) Lines(mode enums.Mode) []Line {
	out := make([]Line, 0, len(a.lines))
	for _, line := range a.lines {
		if mode != "" && line.Mode != mode {
			continue
		}
		out = append(out, *line)
	}
	return out
}

// ItemCount sums line quantities for the mode.
func (a *Aggregator) ItemCount(mode enums.Mode) int {
	count := 0
	for _, line := range a.lines {
		if mode != "" && line.Mode != mode {
			continue
		}
		count += line.Quantity
	}
	return count
}

// Total sums line totals for the mode.
func (a *Aggregator) Total(mode enums.Mode) decimal.Decimal {
	total := decimal.Zero
	for _, line := range a.lines {
		if mode != "" && line.Mode != mode {
			continue
		}
		total = total.Add(line.LineTotal)
	}
	return total
}

func (a *Aggregator) find(key string) *Line {
	for _, line := range a.lines {
		if line.Key == key {
			return line
		}
	}
	return nil
}

func (a *Aggregator) remove(key string) bool {
	for i, line := range a.lines {
		if line.Key == key {
			a.lines = append(a.lines[:i], a.lines[i+1:]...)
			return true
		}
	}
	return false
}

func clamp(item *catalog.Item, quantity int) int {
	if item != nil && item.MaxPerLine > 0 && quantity > item.MaxPerLine {
		return item.MaxPerLine
	}
	return quantity
}
