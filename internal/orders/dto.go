package orders

import (
	"fmt"
	"strings"
)

// ItemsText renders the order's lines into the plain-text block embedded in
// the confirmation email.
func (o *Order) ItemsText() string {
	lines := make([]string, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		label := item.Name
		if item.Detail != "" {
			label = fmt.Sprintf("%s - %s", item.Name, item.Detail)
		}
		lines = append(lines, fmt.Sprintf("%s x%d = $%s", label, item.Quantity, item.LineTotal.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

// AddressText renders the single-line address used in notifications.
func (o *Order) AddressText() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{o.Street, o.City, o.State, o.Zip} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
