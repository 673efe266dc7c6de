package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bookverse/bookverse-backend/pkg/db/models"
	"github.com/bookverse/bookverse-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_cents INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  book_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func TestRepositoryCreateAndFindOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	order := &models.Order{
		ID:         uuid.New(),
		UserID:     userID,
		TotalCents: 7800,
		Status:     enums.OrderStatusCompleted,
	}
	require.NoError(t, repo.CreateOrder(context.Background(), order))

	items := []models.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, BookID: uuid.New(), Quantity: 2, UnitPriceCents: 2500},
		{ID: uuid.New(), OrderID: order.ID, BookID: uuid.New(), Quantity: 1, UnitPriceCents: 2800},
	}
	require.NoError(t, repo.CreateOrderItems(context.Background(), items))

	found, err := repo.FindOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)
	assert.Equal(t, int64(7800), found.TotalCents)
	assert.Equal(t, enums.OrderStatusCompleted, found.Status)
	require.Len(t, found.Items, 2)

	var sum int
	for _, item := range found.Items {
		sum += item.Quantity * item.UnitPriceCents
	}
	assert.Equal(t, 7800, sum)
}

func TestRepositoryCreateOrderSkipsNestedItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := &models.Order{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		TotalCents: 2500,
		Status:     enums.OrderStatusCompleted,
		Items: []models.OrderItem{
			{ID: uuid.New(), BookID: uuid.New(), Quantity: 1, UnitPriceCents: 2500},
		},
	}
	require.NoError(t, repo.CreateOrder(context.Background(), order))

	var count int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count, "line items are written in a separate bulk insert")
}

func TestRepositoryCreateOrderItemsEmptySlice(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.CreateOrderItems(context.Background(), nil))
	require.NoError(t, repo.CreateOrderItems(context.Background(), []models.OrderItem{}))
}

func TestRepositoryFindOrderMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
