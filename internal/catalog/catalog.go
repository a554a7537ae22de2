package catalog

import (
	"fmt"

	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

// Catalog is the loaded, immutable item set. Safe for concurrent reads.
type Catalog struct {
	items   map[string]*Item
	ordered []*Item
}

// Filter narrows a catalog listing. Zero values match everything.
type Filter struct {
	Category    enums.Category
	Classifier  enums.Classifier
	InStockOnly bool
}

// List returns the items of one mode in seed order, narrowed by the filter.
func (c *Catalog) List(mode enums.Mode, filter Filter) []*Item {
	matched := make([]*Item, 0, len(c.ordered))
	for _, item := range c.ordered {
		if item.Mode != mode {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Classifier != "" && item.Classifier != filter.Classifier {
			continue
		}
		if filter.InStockOnly && !item.InStock {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

// Get returns the item with the given id regardless of mode.
func (c *Catalog) Get(itemID string) (*Item, error) {
	item, ok := c.items[itemID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %s not found", itemID))
	}
	return item, nil
}

// GetForMode returns the item only when it belongs to the given mode. Cart
// and checkout use this so a wholesale item can never enter a delivery cart.
func (c *Catalog) GetForMode(mode enums.Mode, itemID string) (*Item, error) {
	item, err := c.Get(itemID)
	if err != nil {
		return nil, err
	}
	if item.Mode != mode {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %s not available in %s mode", itemID, mode))
	}
	return item, nil
}

// Len reports the number of loaded items across both modes.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
