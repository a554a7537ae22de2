package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  mode TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  street TEXT,
  city TEXT,
  state TEXT,
  zip TEXT,
  company TEXT,
  payment_method TEXT NOT NULL,
  delivery_window TEXT,
  notes TEXT,
  total NUMERIC NOT NULL,
  placed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  item_id TEXT NOT NULL,
  name TEXT NOT NULL,
  detail TEXT,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func sampleOrder(sessionID string, placedAt time.Time) *Order {
	return &Order{
		ID:            NewOrderID(placedAt),
		SessionID:     sessionID,
		Mode:          enums.ModeDelivery,
		CustomerName:  "Jess",
		CustomerEmail: "jess@example.com",
		CustomerPhone: "760-555-0100",
		Street:        "1 Main St",
		City:          "Carlsbad",
		State:         "CA",
		Zip:           "92008",
		PaymentMethod: enums.PaymentMethodCashApp,
		Total:         decimal.NewFromInt(100),
		PlacedAt:      placedAt,
		LineItems: []OrderLineItem{
			{
				ItemID:    "oface",
				Name:      "OFace",
				Detail:    "1/8 oz",
				Quantity:  1,
				UnitPrice: decimal.NewFromInt(35),
				LineTotal: decimal.NewFromInt(35),
			},
			{
				ItemID:    "oface",
				Name:      "OFace",
				Detail:    "1/4 oz",
				Quantity:  1,
				UnitPrice: decimal.NewFromInt(65),
				LineTotal: decimal.NewFromInt(65),
			},
		},
	}
}

func TestCreateAndFindByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	placedAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	order := sampleOrder("sess-1", placedAt)
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByID(ctx, "sess-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Len(t, found.LineItems, 2)
	assert.True(t, found.Total.Equal(decimal.NewFromInt(100)))
	for _, item := range found.LineItems {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, order.ID, item.OrderID)
	}
}

func TestFindByIDScopedToSession(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := sampleOrder("sess-1", time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, order))

	_, err := repo.FindByID(ctx, "someone-else", order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateRejectsDuplicateOrderID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	placedAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, sampleOrder("sess-1", placedAt)))

	err := repo.Create(ctx, sampleOrder("sess-2", placedAt))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestListBySessionNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	older := sampleOrder("sess-1", base)
	newer := sampleOrder("sess-1", base.Add(time.Minute))
	other := sampleOrder("sess-2", base.Add(2*time.Minute))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))

	list, next, err := repo.ListBySession(ctx, "sess-1", 0, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, next)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestListBySessionPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		order := sampleOrder("sess-1", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, order))
		ids = append(ids, order.ID)
	}

	first, next, err := repo.ListBySession(ctx, "sess-1", 3, nil)
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotNil(t, next)
	assert.Equal(t, ids[4], first[0].ID)
	assert.Equal(t, ids[2], first[2].ID)

	rest, next, err := repo.ListBySession(ctx, "sess-1", 3, next)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Nil(t, next)
	assert.Equal(t, ids[1], rest[0].ID)
	assert.Equal(t, ids[0], rest[1].ID)
}

func TestItemsText(t *testing.T) {
	order := sampleOrder("sess-1", time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	text := order.ItemsText()
	assert.Contains(t, text, "OFace - 1/8 oz x1 = $35.00")
	assert.Contains(t, text, "OFace - 1/4 oz x1 = $65.00")
	assert.Equal(t, "1 Main St, Carlsbad, CA, 92008", order.AddressText())
}
