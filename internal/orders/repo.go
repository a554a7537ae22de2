package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
	"github.com/westcoasttreez/storefront-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create inserts the order and its line items. Line items without an id get
// one assigned.
func (r *repository) Create(ctx context.Context, order *Order) error {
	for i := range order.LineItems {
		if order.LineItems[i].ID == "" {
			order.LineItems[i].ID = uuid.NewString()
		}
		order.LineItems[i].OrderID = order.ID
	}

	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if isDuplicateKey(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, fmt.Sprintf("order %s already exists", order.ID))
		}
		return err
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, sessionID, orderID string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("id = ? AND session_id = ?", orderID, sessionID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
		}
		return nil, err
	}
	return &order, nil
}

// ListBySession returns the session's orders newest first. When more rows
// remain past the requested page it also returns the cursor for the next one.
func (r *repository) ListBySession(ctx context.Context, sessionID string, limit int, cursor *pagination.Cursor) ([]Order, *pagination.Cursor, error) {
	normalized := pagination.NormalizeLimit(limit)
	query := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("session_id = ?", sessionID)
	if cursor != nil {
		query = query.Where(
			"placed_at < ? OR (placed_at = ? AND id < ?)",
			cursor.PlacedAt, cursor.PlacedAt, cursor.ID,
		)
	}

	var list []Order
	err := query.
		Order("placed_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Find(&list).Error
	if err != nil {
		return nil, nil, err
	}

	var next *pagination.Cursor
	if len(list) > normalized {
		list = list[:normalized]
		last := list[len(list)-1]
		next = &pagination.Cursor{PlacedAt: last.PlacedAt, ID: last.ID}
	}
	return list, next, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
