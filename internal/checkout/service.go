package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/westcoasttreez/storefront-backend/internal/cart"
	"github.com/westcoasttreez/storefront-backend/internal/catalog"
	"github.com/westcoasttreez/storefront-backend/internal/orders"
	"github.com/westcoasttreez/storefront-backend/internal/pricing"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
	"github.com/westcoasttreez/storefront-backend/pkg/metrics"
	"github.com/westcoasttreez/storefront-backend/pkg/notify"
	"github.com/westcoasttreez/storefront-backend/pkg/types"
)

const (
	notifyTimeout    = 15 * time.Second
	createRetryLimit = 3
)

// Input carries the checkout form.
type Input struct {
	Customer       types.Customer
	Address        types.Address
	Company        string
	PaymentMethod  enums.PaymentMethod
	DeliveryWindow enums.DeliveryWindow
	Notes          string
}

type cartAccess interface {
	LinesForCheckout(sessionID string, mode enums.Mode) []cart.Line
	ClearModeLines(sessionID string, mode enums.Mode)
}

type modeReader interface {
	Get(ctx context.Context, sessionID string) (enums.Mode, error)
}

type itemLookup interface {
	GetForMode(mode enums.Mode, itemID string) (*catalog.Item, error)
}

// Notifier sends order confirmations. A nil Notifier disables them.
type Notifier interface {
	SendOrderPlaced(ctx context.Context, summary notify.OrderSummary) error
}

// Service turns a session's cart into a persisted order.
type Service struct {
	carts    cartAccess
	modes    modeReader
	catalog  itemLookup
	repo     orders.Repository
	notifier Notifier
	log      *logger.Logger
	metrics  *metrics.StorefrontMetrics
	now      func() time.Time
}

func NewService(
	carts cartAccess,
	modes modeReader,
	cat itemLookup,
	repo orders.Repository,
	relay Notifier,
	log *logger.Logger,
	m *metrics.StorefrontMetrics,
) *Service {
	return &Service{
		carts:    carts,
		modes:    modes,
		catalog:  cat,
		repo:     repo,
		notifier: relay,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// PlaceOrder validates the session's cart against the active mode, persists
// the order, clears the checked-out mode's lines, and fires the confirmation
// notification in the background. The other mode's cart is untouched.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, input Input) (*orders.Order, error) {
	mode, err := s.modes.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		s.metrics.IncCheckoutRejection("no_active_mode")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "choose delivery or wholesale before checking out")
	}
	ctx = s.log.WithMode(ctx, mode.String())

	if err := s.validateInput(mode, input); err != nil {
		s.metrics.IncCheckoutRejection("invalid_input")
		return nil, err
	}

	lines := s.carts.LinesForCheckout(sessionID, mode)
	if len(lines) == 0 {
		s.metrics.IncCheckoutRejection("empty_cart")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := ValidateMinimumOrder(lines, s.minQtyFor(mode)); err != nil {
		s.metrics.IncCheckoutRejection("below_minimum_order")
		return nil, err
	}

	order, err := s.buildOrder(sessionID, mode, input, lines)
	if err != nil {
		return nil, err
	}

	if err := s.createWithRetry(ctx, order); err != nil {
		s.log.Error(ctx, "persisting order failed", err)
		return nil, err
	}

	s.carts.ClearModeLines(sessionID, mode)
	s.metrics.IncOrderPlaced(mode.String())
	s.log.Info(s.log.WithField(ctx, "order_id", order.ID), "order placed")

	s.sendNotification(ctx, order)
	return order, nil
}

func (s *Service) validateInput(mode enums.Mode, input Input) error {
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	if !input.PaymentMethod.AllowedForMode(mode) {
		return pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("payment method %s is not offered in %s mode", input.PaymentMethod, mode),
		)
	}
	if mode == enums.ModeDelivery {
		if input.DeliveryWindow == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "delivery window is required for delivery orders")
		}
		if !input.DeliveryWindow.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown delivery window %q", input.DeliveryWindow))
		}
	}
	return nil
}

func (s *Service) minQtyFor(mode enums.Mode) func(itemID string) int {
	return func(itemID string) int {
		item, err := s.catalog.GetForMode(mode, itemID)
		if err != nil {
			return 1
		}
		return item.MinOrderQty()
	}
}

// buildOrder re-resolves every line through the price resolver so the
// persisted totals reflect the catalog at placement time, not add time.
func (s *Service) buildOrder(sessionID string, mode enums.Mode, input Input, lines []cart.Line) (*orders.Order, error) {
	placedAt := s.now().UTC()
	order := &orders.Order{
		ID:             orders.NewOrderID(placedAt),
		SessionID:      sessionID,
		Mode:           mode,
		CustomerName:   input.Customer.Name,
		CustomerEmail:  input.Customer.Email,
		CustomerPhone:  input.Customer.Phone,
		Street:         input.Address.Street,
		City:           input.Address.City,
		State:          input.Address.State,
		Zip:            input.Address.Zip,
		Company:        input.Company,
		PaymentMethod:  input.PaymentMethod,
		DeliveryWindow: input.DeliveryWindow,
		Notes:          input.Notes,
		PlacedAt:       placedAt,
	}

	total := decimal.Zero
	for _, line := range lines {
		item, err := s.catalog.GetForMode(mode, line.ItemID)
		if err != nil {
			return nil, err
		}
		unit, err := pricing.UnitPrice(item, pricing.Selection{Weight: line.Weight, FlavorName: line.FlavorName}, line.Quantity)
		if err != nil {
			return nil, err
		}
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		order.LineItems = append(order.LineItems, orders.OrderLineItem{
			ItemID:    line.ItemID,
			Name:      line.ItemName,
			Detail:    line.Detail(),
			Quantity:  line.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	order.Total = total
	return order, nil
}

// createWithRetry bumps the millisecond-precision order id on key conflicts.
func (s *Service) createWithRetry(ctx context.Context, order *orders.Order) error {
	var err error
	for attempt := 0; attempt < createRetryLimit; attempt++ {
		if attempt > 0 {
			order.PlacedAt = order.PlacedAt.Add(time.Millisecond)
			order.ID = orders.NewOrderID(order.PlacedAt)
		}
		err = s.repo.Create(ctx, order)
		if err == nil {
			return nil
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeConflict {
			return err
		}
	}
	return err
}

// sendNotification fires the confirmation email without blocking or failing
// the order. The goroutine gets its own deadline, detached from the request.
func (s *Service) sendNotification(ctx context.Context, order *orders.Order) {
	if s.notifier == nil {
		return
	}

	summary := notify.OrderSummary{
		OrderNumber:    order.ID,
		CustomerName:   order.CustomerName,
		CustomerEmail:  order.CustomerEmail,
		CustomerPhone:  order.CustomerPhone,
		Mode:           modeLabel(order.Mode),
		ItemsText:      order.ItemsText(),
		Total:          "$" + order.Total.StringFixed(2),
		PaymentMethod:  order.PaymentMethod.String(),
		Address:        order.AddressText(),
		Company:        order.Company,
		Notes:          order.Notes,
		DeliveryWindow: order.DeliveryWindow.String(),
	}

	orderID := order.ID
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.SendOrderPlaced(sendCtx, summary); err != nil {
			s.metrics.IncNotifyFailure()
			s.log.Error(s.log.WithField(sendCtx, "order_id", orderID), "order notification failed", err)
		}
	}()
}

func modeLabel(mode enums.Mode) string {
	switch mode {
	case enums.ModeDelivery:
		return "Delivery"
	case enums.ModeWholesale:
		return "Wholesale"
	}
	return mode.String()
}
