package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

func setupCart(t *testing.T) (*CartService, *InventoryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	inv := NewInventoryService(db, log)
	return NewCartService(db, inv, log), inv, db
}

func TestCartAddCreatesRow(t *testing.T) {
	cart, _, db := setupCart(t)
	user := createTestUser(t, db, "alice@example.com")
	product := createTestProduct(t, db, "Свеча восковая", 350, 10)

	item, err := cart.Add(user.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestCartAddMergesQuantities(t *testing.T) {
	cart, _, db := setupCart(t)
	user := createTestUser(t, db, "alice@example.com")
	product := createTestProduct(t, db, "Свеча восковая", 350, 10)

	_, err := cart.Add(user.ID, product.ID, 2)
	require.NoError(t, err)
	item, err := cart.Add(user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", user.ID, product.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCartAddRespectsOtherCarts(t *testing.T) {
	cart, _, db := setupCart(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	product := createTestProduct(t, db, "Подсвечник", 800, 5)

	_, err := cart.Add(alice.ID, product.ID, 3)
	require.NoError(t, err)

	// 3 of 5 are promised to Alice: Bob can take 2, not 3.
	_, err = cart.Add(bob.ID, product.ID, 3)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	_, err = cart.Add(bob.ID, product.ID, 2)
	require.NoError(t, err)
}

func TestCartAddMergeHitsCeiling(t *testing.T) {
	cart, _, db := setupCart(t)
	user := createTestUser(t, db, "alice@example.com")
	product := createTestProduct(t, db, "Тарелка расписная", 600, 5)

	_, err := cart.Add(user.ID, product.ID, 3)
	require.NoError(t, err)

	// Merged total 6 > stock 5. The row must keep its old quantity.
	_, err = cart.Add(user.ID, product.ID, 3)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)

	items, err := cart.Items(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartAddValidation(t *testing.T) {
	cart, _, db := setupCart(t)
	user := createTestUser(t, db, "alice@example.com")
	product := createTestProduct(t, db, "Игрушка", 450, 5)

	_, err := cart.Add(user.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cart.Add(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.Model(product).Update("is_active", false).Error)
	_, err = cart.Add(user.ID, product.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartSetQuantityExcludesOwnRow(t *testing.T) {
	cart, _, db := setupCart(t)
	user := createTestUser(t, db, "alice@example.com")
	product := createTestProduct(t, db, "Кашпо", 550, 5)

	item, err := cart.Add(user.ID, product.ID, 3)
	require.NoError(t, err)

	// Raising 3 -> 5 is fine: the row's own 3 must not count against itself.
	updated, err := cart.SetQuantity(item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	_, err = cart.SetQuantity(item.ID, 6)
	var stockErr *InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)

	_, err = cart.SetQuantity(item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartRemove(t *testing.T) {
	cart, _, db := setupCart(t)
	user := createTestUser(t, db, "alice@example.com")
	product := createTestProduct(t, db, "Брелок", 150, 5)

	item, err := cart.Add(user.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cart.Remove(item.ID))
	assert.ErrorIs(t, cart.Remove(item.ID), ErrNotFound)
}

func TestCartTotalValueUsesCurrentPrice(t *testing.T) {
	cart, _, db := setupCart(t)
	user := createTestUser(t, db, "alice@example.com")
	product := createTestProduct(t, db, "Панно", 2500, 5)

	_, err := cart.Add(user.ID, product.ID, 2)
	require.NoError(t, err)

	total, err := cart.TotalValue(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5000, total, 0.001)

	// Cart totals always reflect today's price, not the add-time one.
	require.NoError(t, db.Model(product).Update("price", 3000).Error)
	total, err = cart.TotalValue(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6000, total, 0.001)
}

func TestCartClear(t *testing.T) {
	cart, _, db := setupCart(t)
	user := createTestUser(t, db, "alice@example.com")
	p1 := createTestProduct(t, db, "Магнит", 100, 5)
	p2 := createTestProduct(t, db, "Открытка", 50, 5)

	_, err := cart.Add(user.ID, p1.ID, 1)
	require.NoError(t, err)
	_, err = cart.Add(user.ID, p2.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cart.ClearCart(user.ID))
	items, err := cart.Items(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
