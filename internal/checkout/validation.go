package checkout

import (
	"fmt"

	"github.com/westcoasttreez/storefront-backend/internal/cart"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

// MinOrderViolation reports one line sitting below its item's minimum order
// quantity at checkout time. The cart itself stays permissive; the floor is
// enforced here.
type MinOrderViolation struct {
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name,omitempty"`
	RequiredQty  int    `json:"required_qty"`
	RequestedQty int    `json:"requested_qty"`
}

// ValidateMinimumOrder checks every line against its item's minimum order
// quantity. minQtyFor resolves the floor per item id; floors of 1 or below
// never violate.
func ValidateMinimumOrder(lines []cart.Line, minQtyFor func(itemID string) int) error {
	var violations []MinOrderViolation
	for _, line := range lines {
		required := minQtyFor(line.ItemID)
		if required <= 1 {
			continue
		}
		if line.Quantity < required {
			violations = append(violations, MinOrderViolation{
				ItemID:       line.ItemID,
				ItemName:     line.ItemName,
				RequiredQty:  required,
				RequestedQty: line.Quantity,
			})
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.New(
		pkgerrors.CodeStateConflict,
		fmt.Sprintf("minimum order quantity not met for %d item(s)", len(violations)),
	).WithDetails(map[string]any{"violations": violations})
}
