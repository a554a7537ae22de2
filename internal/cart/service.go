package cart

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	"github.com/westcoasttreez/storefront-backend/internal/pricing"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
	"github.com/westcoasttreez/storefront-backend/pkg/metrics"
)

// AddRequest is one add-to-cart intent.
type AddRequest struct {
	ItemID   string
	Weight   enums.Weight
	Flavor   string
	Quantity int
}

// Snapshot is the cart state returned after every read or mutation, always
// recomputed from the live lines.
type Snapshot struct {
	Mode      enums.Mode      `json:"mode"`
	Lines     []Line          `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// Service binds the session store to the catalog and price resolver.
type Service struct {
	store   *Store
	catalog *catalog.Catalog
	log     *logger.Logger
	metrics *metrics.StorefrontMetrics
}

func NewService(store *Store, cat *catalog.Catalog, log *logger.Logger, m *metrics.StorefrontMetrics) *Service {
	return &Service{store: store, catalog: cat, log: log, metrics: m}
}

// Snapshot returns the session's cart state for one mode.
func (s *Service) Snapshot(ctx context.Context, sessionID string, mode enums.Mode) Snapshot {
	var snap Snapshot
	_ = s.store.With(sessionID, func(agg *Aggregator) error {
		snap = snapshot(agg, mode)
		return nil
	})
	return snap
}

// Add resolves the item for the mode and merges it into the session's cart.
// A zero quantity on a tier-priced item defaults to the item's minimum order,
// matching the storefront's one-click wholesale add.
func (s *Service) Add(ctx context.Context, sessionID string, mode enums.Mode, req AddRequest) (Line, Snapshot, error) {
	item, err := s.catalog.GetForMode(mode, req.ItemID)
	if err != nil {
		return Line{}, Snapshot{}, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = item.MinOrderQty()
	}

	var (
		line Line
		snap Snapshot
	)
	err = s.store.With(sessionID, func(agg *Aggregator) error {
		added, addErr := agg.Add(item, pricing.Selection{Weight: req.Weight, FlavorName: req.Flavor}, quantity)
		if addErr != nil {
			return addErr
		}
		line = added
		snap = snapshot(agg, mode)
		return nil
	})
	if err != nil {
		return Line{}, Snapshot{}, err
	}

	s.metrics.IncCartOp("add")
	s.log.Info(s.log.WithFields(ctx, map[string]any{
		"line_key": line.Key,
		"quantity": line.Quantity,
	}), "cart line added")
	return line, snap, nil
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (Snapshot, error) {
	mode, err := modeFromKey(lineKey)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	err = s.store.With(sessionID, func(agg *Aggregator) error {
		if _, _, updateErr := agg.UpdateQuantity(lineKey, quantity); updateErr != nil {
			return updateErr
		}
		snap = snapshot(agg, mode)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	s.metrics.IncCartOp("update")
	return snap, nil
}

// Remove deletes a line.
func (s *Service) Remove(ctx context.Context, sessionID, lineKey string) (Snapshot, error) {
	mode, err := modeFromKey(lineKey)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	err = s.store.With(sessionID, func(agg *Aggregator) error {
		if removeErr := agg.Remove(lineKey); removeErr != nil {
			return removeErr
		}
		snap = snapshot(agg, mode)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	s.metrics.IncCartOp("remove")
	return snap, nil
}

// Clear empties one mode's cart, or the whole cart when mode is empty.
func (s *Service) Clear(ctx context.Context, sessionID string, mode enums.Mode) Snapshot {
	var snap Snapshot
	_ = s.store.With(sessionID, func(agg *Aggregator) error {
		if mode == "" {
			agg.Clear()
		} else {
			agg.ClearMode(mode)
		}
		snap = snapshot(agg, mode)
		return nil
	})

	s.metrics.IncCartOp("clear")
	return snap
}

// ClearModeLines empties one mode's lines after a successful checkout.
func (s *Service) ClearModeLines(sessionID string, mode enums.Mode) {
	_ = s.store.With(sessionID, func(agg *Aggregator) error {
		agg.ClearMode(mode)
		return nil
	})
}

// LinesForCheckout returns the mode's lines for order placement.
func (s *Service) LinesForCheckout(sessionID string, mode enums.Mode) []Line {
	var lines []Line
	_ = s.store.With(sessionID, func(agg *Aggregator) error {
		lines = agg.Lines(mode)
		return nil
	})
	return lines
}

// Item exposes catalog lookup for callers that already hold a line.
func (s *Service) Item(mode enums.Mode, itemID string) (*catalog.Item, error) {
	return s.catalog.GetForMode(mode, itemID)
}

func snapshot(agg *Aggregator, mode enums.Mode) Snapshot {
	return Snapshot{
		Mode:      mode,
		Lines:     agg.Lines(mode),
		ItemCount: agg.ItemCount(mode),
		Total:     agg.Total(mode),
	}
}

func modeFromKey(lineKey string) (enums.Mode, error) {
	prefix, _, found := strings.Cut(lineKey, "|")
	if !found {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "malformed cart line key")
	}
	mode, err := enums.ParseMode(prefix)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed cart line key")
	}
	return mode, nil
}
