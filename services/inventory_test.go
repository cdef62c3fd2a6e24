package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JIexa3/StoreOfHandWork/models"
)

func TestAvailableQuantityCountsAllCarts(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())

	product := createTestProduct(t, db, "Ваза керамическая", 1500, 5)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	require.NoError(t, db.Create(&models.CartItem{UserID: alice.ID, ProductID: product.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: bob.ID, ProductID: product.ID, Quantity: 1}).Error)

	assert.Equal(t, 2, inv.AvailableQuantity(product.ID))
}

func TestAvailableQuantityUnknownProductIsZero(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())

	assert.Equal(t, 0, inv.AvailableQuantity(9999))
}

func TestAvailableQuantityNeverNegative(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())

	// Reservations can legitimately exceed stock after an admin lowers it.
	product := createTestProduct(t, db, "Брошь", 700, 1)
	user := createTestUser(t, db, "alice@example.com")
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 3}).Error)

	assert.Equal(t, 0, inv.AvailableQuantity(product.ID))
}

func TestIsReservable(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())

	product := createTestProduct(t, db, "Шарф вязаный", 2000, 5)
	user := createTestUser(t, db, "alice@example.com")
	item := models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 3}
	require.NoError(t, db.Create(&item).Error)

	assert.True(t, inv.IsReservable(product.ID, 2, nil))
	assert.False(t, inv.IsReservable(product.ID, 3, nil))

	// Excluding the user's own row frees its quantity for re-validation.
	assert.True(t, inv.IsReservable(product.ID, 5, &item.ID))
	assert.False(t, inv.IsReservable(product.ID, 6, &item.ID))

	assert.False(t, inv.IsReservable(product.ID, 0, nil))
	assert.False(t, inv.IsReservable(product.ID, -1, nil))
	assert.False(t, inv.IsReservable(9999, 1, nil))
}

func TestIsReservableInactiveProduct(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())

	product := createTestProduct(t, db, "Снятый с продажи", 100, 10)
	require.NoError(t, db.Model(product).Update("is_active", false).Error)

	assert.False(t, inv.IsReservable(product.ID, 1, nil))
}

func TestCommitDecrement(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())

	product := createTestProduct(t, db, "Кукла тряпичная", 1200, 2)

	require.NoError(t, inv.CommitDecrement(db, product.ID, 2))
	assert.Equal(t, 0, reloadProduct(t, db, product.ID).StockQuantity)
}

func TestCommitDecrementInsufficient(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())

	product := createTestProduct(t, db, "Кукла тряпичная", 1200, 2)

	err := inv.CommitDecrement(db, product.ID, 3)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// Stock must be untouched after a refused decrement.
	assert.Equal(t, 2, reloadProduct(t, db, product.ID).StockQuantity)
}

func TestCommitDecrementRejectsBadQuantity(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())
	product := createTestProduct(t, db, "Ваза", 100, 2)

	assert.ErrorIs(t, inv.CommitDecrement(db, product.ID, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, inv.CommitDecrement(db, product.ID, -1), ErrInvalidQuantity)
	assert.True(t, errors.Is(inv.CommitDecrement(db, 9999, 1), ErrNotFound))
}

func TestRestock(t *testing.T) {
	db := newTestDB(t)
	inv := NewInventoryService(db, newTestLogger())
	product := createTestProduct(t, db, "Корзина плетеная", 900, 1)

	require.NoError(t, inv.Restock(db, product.ID, 4))
	assert.Equal(t, 5, reloadProduct(t, db, product.ID).StockQuantity)

	assert.ErrorIs(t, inv.Restock(db, product.ID, 0), ErrInvalidQuantity)
}
