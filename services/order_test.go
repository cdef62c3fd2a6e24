package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

func setupOrder(t *testing.T, autoDeliverAfter time.Duration) (*OrderService, *CartService, *fakeMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	inv := NewInventoryService(db, log)
	mailer := &fakeMailer{}
	svc := NewOrderService(db, inv, mailer, log, autoDeliverAfter)
	t.Cleanup(svc.Stop)
	return svc, NewCartService(db, inv, log), mailer, db
}

func TestOrderTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.OrderStatusNew, models.OrderStatusProcessing, true},
		{models.OrderStatusNew, models.OrderStatusCancelled, true},
		{models.OrderStatusNew, models.OrderStatusShipped, false},
		{models.OrderStatusNew, models.OrderStatusDelivered, false},
		{models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{models.OrderStatusProcessing, models.OrderStatusDelivered, true},
		{models.OrderStatusProcessing, models.OrderStatusCancelled, false},
		{models.OrderStatusProcessing, models.OrderStatusNew, false},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusShipped, false},
		{models.OrderStatusCancelled, models.OrderStatusNew, false},
		{models.OrderStatusDelivered, models.OrderStatusDelivered, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.ok, IsValidOrderTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCheckoutCreatesOrderAndEmptiesCart(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Ваза керамическая", 1500, 5)

	_, err := cart.Add(user.ID, product.ID, 2)
	require.NoError(t, err)

	order, err := orders.Checkout(user.ID, point.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	assert.NotEmpty(t, order.TrackingNumber)
	assert.InDelta(t, 3000, order.TotalAmount, 0.001)
	require.Len(t, order.OrderItems, 1)
	assert.InDelta(t, 1500, order.OrderItems[0].Price, 0.001)

	items, err := cart.Items(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Checkout is not the stock commit; collection is.
	assert.Equal(t, 5, reloadProduct(t, db, product.ID).StockQuantity)
}

func TestCheckoutEmptyCart(t *testing.T) {
	orders, _, _, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)

	_, err := orders.Checkout(user.ID, point.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRequiresPickupPoint(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	product := createTestProduct(t, db, "Ваза", 1500, 5)

	_, err := cart.Add(user.ID, product.ID, 1)
	require.NoError(t, err)

	_, err = orders.Checkout(user.ID, 9999)
	assert.ErrorIs(t, err, ErrPickupPointRequired)
}

func TestCheckoutInsufficientStockLeavesCartIntact(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Шкатулка", 2200, 3)

	_, err := cart.Add(user.ID, product.ID, 3)
	require.NoError(t, err)

	// Stock shrank between add and checkout.
	require.NoError(t, db.Model(product).Update("stock_quantity", 1).Error)

	_, err = orders.Checkout(user.ID, point.ID)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	items, err := cart.Items(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestPriceSnapshotSurvivesCatalogChanges(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Серьги", 1800, 5)

	_, err := cart.Add(user.ID, product.ID, 1)
	require.NoError(t, err)
	order, err := orders.Checkout(user.ID, point.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(product).Update("price", 9999).Error)

	var item models.OrderItem
	require.NoError(t, db.First(&item, order.OrderItems[0].ID).Error)
	assert.InDelta(t, 1800, item.Price, 0.001)
}

func checkoutOrder(t *testing.T, orders *OrderService, cart *CartService, db *gorm.DB, userID, pointID uint, productID uint, qty int) *models.Order {
	t.Helper()
	_, err := cart.Add(userID, productID, qty)
	require.NoError(t, err)
	order, err := orders.Checkout(userID, pointID)
	require.NoError(t, err)
	return order
}

func TestSaveCollectionCommitsStock(t *testing.T) {
	orders, cart, mailer, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Плед", 4500, 5)
	order := checkoutOrder(t, orders, cart, db, user.ID, point.ID, product.ID, 2)

	// Collection is gated on every item being packed.
	_, err := orders.SaveCollection(order.ID)
	assert.ErrorIs(t, err, ErrItemsNotCollected)

	require.NoError(t, orders.SetItemCollected(order.OrderItems[0].ID, true))

	updated, err := orders.SaveCollection(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
	assert.Equal(t, 3, reloadProduct(t, db, product.ID).StockQuantity)
	assert.Equal(t, 1, mailer.orderEmailCount())

	// A second save must not decrement again.
	_, err = orders.SaveCollection(order.ID)
	var transErr *TransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, 3, reloadProduct(t, db, product.ID).StockQuantity)
}

func TestSaveCollectionInsufficientStockRollsBack(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Ковер", 8000, 2)
	order := checkoutOrder(t, orders, cart, db, user.ID, point.ID, product.ID, 2)

	require.NoError(t, orders.SetItemCollected(order.OrderItems[0].ID, true))
	require.NoError(t, db.Model(product).Update("stock_quantity", 1).Error)

	_, err := orders.SaveCollection(order.ID)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	var reread models.Order
	require.NoError(t, db.First(&reread, order.ID).Error)
	assert.Equal(t, models.OrderStatusNew, reread.Status)
	assert.Equal(t, 1, reloadProduct(t, db, product.ID).StockQuantity)
}

func TestCancelFromNewLeavesStockAlone(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Фигурка", 950, 5)
	order := checkoutOrder(t, orders, cart, db, user.ID, point.ID, product.ID, 2)

	cancelled, err := orders.ChangeStatus(order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 5, reloadProduct(t, db, product.ID).StockQuantity)

	// Cancelled is terminal.
	_, err = orders.ChangeStatus(order.ID, models.OrderStatusProcessing)
	var transErr *TransitionError
	assert.ErrorAs(t, err, &transErr)
}

func TestChangeStatusProcessingToShippedToDelivered(t *testing.T) {
	orders, cart, mailer, db := setupOrder(t, 0)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Картина", 12000, 3)
	order := checkoutOrder(t, orders, cart, db, user.ID, point.ID, product.ID, 1)

	require.NoError(t, orders.SetItemCollected(order.OrderItems[0].ID, true))
	_, err := orders.ChangeStatus(order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)

	_, err = orders.ChangeStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	_, err = orders.ChangeStatus(order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)

	assert.Equal(t, 3, mailer.orderEmailCount())

	_, err = orders.ChangeStatus(order.ID, models.OrderStatusShipped)
	var transErr *TransitionError
	assert.ErrorAs(t, err, &transErr)
}

func TestMailerFailureDoesNotBlockCollection(t *testing.T) {
	orders, cart, mailer, db := setupOrder(t, 0)
	mailer.failAll = true
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Часы", 5600, 2)
	order := checkoutOrder(t, orders, cart, db, user.ID, point.ID, product.ID, 1)

	require.NoError(t, orders.SetItemCollected(order.OrderItems[0].ID, true))
	updated, err := orders.SaveCollection(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
}

func TestAutoDeliverAdvancesProcessingOrders(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 30*time.Millisecond)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Ложка резная", 300, 5)
	order := checkoutOrder(t, orders, cart, db, user.ID, point.ID, product.ID, 1)

	require.NoError(t, orders.SetItemCollected(order.OrderItems[0].ID, true))
	_, err := orders.SaveCollection(order.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		var reread models.Order
		if err := db.First(&reread, order.ID).Error; err != nil {
			return false
		}
		return reread.Status == models.OrderStatusDelivered
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAutoDeliverSkipsOrdersThatMovedOn(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 40*time.Millisecond)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Ложка резная", 300, 5)
	order := checkoutOrder(t, orders, cart, db, user.ID, point.ID, product.ID, 1)

	require.NoError(t, orders.SetItemCollected(order.OrderItems[0].ID, true))
	_, err := orders.SaveCollection(order.ID)
	require.NoError(t, err)

	// Shipping before the timer fires cancels it.
	_, err = orders.ChangeStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	var reread models.Order
	require.NoError(t, db.First(&reread, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, reread.Status)
}

func TestResumeAutoDeliverPicksUpProcessingOrders(t *testing.T) {
	orders, cart, _, db := setupOrder(t, 30*time.Millisecond)
	user := createTestUser(t, db, "alice@example.com")
	point := createTestPickupPoint(t, db)
	product := createTestProduct(t, db, "Ложка резная", 300, 5)
	order := checkoutOrder(t, orders, cart, db, user.ID, point.ID, product.ID, 1)

	require.NoError(t, orders.SetItemCollected(order.OrderItems[0].ID, true))
	_, err := orders.SaveCollection(order.ID)
	require.NoError(t, err)
	orders.Stop() // simulate a restart losing the in-memory timer

	require.NoError(t, orders.ResumeAutoDeliver())
	require.Eventually(t, func() bool {
		var reread models.Order
		if err := db.First(&reread, order.ID).Error; err != nil {
			return false
		}
		return reread.Status == models.OrderStatusDelivered
	}, 2*time.Second, 10*time.Millisecond)
}
