package enums

import "fmt"

// PaymentMethod is the payment preference collected at checkout. No payment is
// processed; the value travels on the order record only.
type PaymentMethod string

const (
	PaymentMethodCashApp PaymentMethod = "cashapp"
	PaymentMethodVenmo   PaymentMethod = "venmo"
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodWire    PaymentMethod = "wire"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCashApp,
	PaymentMethodVenmo,
	PaymentMethodCash,
	PaymentMethodWire,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// AllowedForMode reports whether the method is offered in the given mode.
// Cash on delivery is delivery-only; wire/zelle is wholesale-only.
func (p PaymentMethod) AllowedForMode(mode Mode) bool {
	switch p {
	case PaymentMethodCash:
		return mode == ModeDelivery
	case PaymentMethodWire:
		return mode == ModeWholesale
	}
	return p.IsValid()
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}

// DeliveryWindow is the requested delivery slot for delivery-mode orders.
type DeliveryWindow string

const (
	DeliveryWindowSameDay  DeliveryWindow = "sameday"
	DeliveryWindowNextDay  DeliveryWindow = "nextday"
	DeliveryWindowFlexible DeliveryWindow = "flexible"
)

var validDeliveryWindows = []DeliveryWindow{
	DeliveryWindowSameDay,
	DeliveryWindowNextDay,
	DeliveryWindowFlexible,
}

// String implements fmt.Stringer.
func (d DeliveryWindow) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryWindow.
func (d DeliveryWindow) IsValid() bool {
	for _, candidate := range validDeliveryWindows {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryWindow converts raw input into a DeliveryWindow.
func ParseDeliveryWindow(value string) (DeliveryWindow, error) {
	for _, candidate := range validDeliveryWindows {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery window %q", value)
}
