package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/westcoasttreez/storefront-backend/pkg/pagination"
)

// Repository persists and retrieves placed orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, sessionID, orderID string) (*Order, error)
	ListBySession(ctx context.Context, sessionID string, limit int, cursor *pagination.Cursor) ([]Order, *pagination.Cursor, error)
}
