package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// OrderService converts a valid cart into a committed order and drives it
// through its lifecycle. Stock is not decremented at checkout; the hard
// commit happens when the warehouse saves the collection step.
type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
	mailer    Mailer
	log       *logrus.Logger

	// Processing orders advance to Delivered automatically after this long.
	// Zero disables the timer entirely.
	autoDeliverAfter time.Duration

	mu     sync.Mutex
	timers map[uint]*time.Timer
}

func NewOrderService(db *gorm.DB, inventory *InventoryService, mailer Mailer, log *logrus.Logger, autoDeliverAfter time.Duration) *OrderService {
	return &OrderService{
		db:               db,
		inventory:        inventory,
		mailer:           mailer,
		log:              log,
		autoDeliverAfter: autoDeliverAfter,
		timers:           make(map[uint]*time.Timer),
	}
}

// IsValidOrderTransition is the single source of truth for order status
// changes. New can be cancelled; everything else moves forward only.
func IsValidOrderTransition(current, next models.OrderStatus) bool {
	switch current {
	case models.OrderStatusNew:
		return next == models.OrderStatusProcessing || next == models.OrderStatusCancelled
	case models.OrderStatusProcessing:
		return next == models.OrderStatusShipped || next == models.OrderStatusDelivered
	case models.OrderStatusShipped:
		return next == models.OrderStatusDelivered
	default:
		return false
	}
}

// Checkout turns the user's cart into an order in one all-or-nothing
// transaction: hard stock re-check, pickup point required, numbers generated,
// order + snapshot-priced items created, cart emptied. On any failure the
// cart is left untouched and the caller should re-fetch authoritative state.
func (s *OrderService) Checkout(userID uint, pickupPointID uint) (*models.Order, error) {
	var cartItems []models.CartItem
	if err := s.db.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var pickup models.PickupPoint
	if err := s.db.First(&pickup, pickupPointID).Error; err != nil || pickup.Address == "" {
		return nil, ErrPickupPointRequired
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		orderItems := make([]models.OrderItem, 0, len(cartItems))

		for _, item := range cartItems {
			// Hard check against real stock. The soft cart-time figure may
			// have gone stale since the item was added.
			var product models.Product
			if err := lockForUpdate(tx).First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", item.ProductID, ErrProductUnavailable)
				}
				return err
			}
			if !product.IsActive {
				return fmt.Errorf("product %q: %w", product.Name, ErrProductUnavailable)
			}
			if product.StockQuantity < item.Quantity {
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   product.StockQuantity,
				}
			}

			total += product.Price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price, // snapshot, frozen from here on
			})
		}

		created, err := s.createOrderRow(tx, &user, &pickup, total)
		if err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = created.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		created.OrderItems = orderItems
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.TotalAmount,
	}).Info("order: checkout committed")
	return order, nil
}

// createOrderRow inserts the order, regenerating the number pair once if the
// unique constraint fires. Same-second checkouts can collide on the
// timestamp; the random suffix makes a second collision astronomically
// unlikely.
func (s *OrderService) createOrderRow(tx *gorm.DB, user *models.User, pickup *models.PickupPoint, total float64) (*models.Order, error) {
	shipping := user.Address
	if shipping == "" {
		shipping = "Не указан"
	}

	for attempt := 0; attempt < 2; attempt++ {
		order := models.Order{
			OrderNumber:     models.GenerateOrderNumber(),
			TrackingNumber:  models.GenerateTrackingNumber(),
			UserID:          user.ID,
			OrderDate:       time.Now(),
			Status:          models.OrderStatusNew,
			TotalAmount:     total,
			ShippingAddress: shipping,
			PickupAddress:   pickup.Address,
			PickupPointID:   &pickup.ID,
		}
		err := tx.Create(&order).Error
		if err == nil {
			return &order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("order number collision persisted after retry")
}

// SetItemCollected flips the warehouse packing flag on one order item. Only
// orders still in New are being packed.
func (s *OrderService) SetItemCollected(orderItemID uint, collected bool) error {
	var item models.OrderItem
	if err := s.db.Preload("Order").First(&item, orderItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order item %d: %w", orderItemID, ErrNotFound)
		}
		return err
	}
	if item.Order != nil && item.Order.Status != models.OrderStatusNew {
		return &TransitionError{Entity: "order", From: string(item.Order.Status), To: string(models.OrderStatusProcessing)}
	}

	return s.db.Model(&models.OrderItem{}).
		Where("id = ?", orderItemID).
		Update("is_collected", collected).Error
}

// SaveCollection finishes the packing step: every item must be collected,
// then in one transaction real stock is decremented per item and the order
// moves to Processing. The status email is best-effort; a send failure is
// reported but never rolls the stock commit back.
func (s *OrderService) SaveCollection(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("OrderItems").Preload("User").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}

	if order.Status != models.OrderStatusNew {
		return nil, &TransitionError{Entity: "order", From: string(order.Status), To: string(models.OrderStatusProcessing)}
	}
	for _, item := range order.OrderItems {
		if !item.IsCollected {
			return nil, ErrItemsNotCollected
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.OrderItems {
			if err := s.inventory.CommitDecrement(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", models.OrderStatusProcessing).Error
	})
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusProcessing

	s.notifyStatus(&order, "Заказ собран и готов к выдаче")
	s.scheduleAutoDeliver(order.ID)
	return &order, nil
}

// ChangeStatus applies one transition from the table. Leaving New requires
// the collection step to be complete.
func (s *OrderService) ChangeStatus(orderID uint, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("OrderItems").Preload("User").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}

	if !IsValidOrderTransition(order.Status, next) {
		return nil, &TransitionError{Entity: "order", From: string(order.Status), To: string(next)}
	}

	if order.Status == models.OrderStatusNew && next == models.OrderStatusProcessing {
		// The collection step owns this transition: it is the one that
		// commits stock.
		return s.SaveCollection(orderID)
	}

	if err := s.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("status", next).Error; err != nil {
		return nil, err
	}
	order.Status = next

	if next != models.OrderStatusProcessing {
		s.cancelAutoDeliver(order.ID)
	}
	s.notifyStatus(&order, models.OrderStatusDisplay(next))
	return &order, nil
}

// ResumeAutoDeliver re-arms timers for orders that were Processing when the
// process last stopped. Called once at startup.
func (s *OrderService) ResumeAutoDeliver() error {
	if s.autoDeliverAfter <= 0 {
		return nil
	}
	var ids []uint
	if err := s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusProcessing).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	for _, id := range ids {
		s.scheduleAutoDeliver(id)
	}
	return nil
}

// Stop cancels all pending timers. Used on shutdown and by tests.
func (s *OrderService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *OrderService) scheduleAutoDeliver(orderID uint) {
	if s.autoDeliverAfter <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[orderID]; ok {
		t.Stop()
	}
	s.timers[orderID] = time.AfterFunc(s.autoDeliverAfter, func() {
		s.autoDeliver(orderID)
	})
}

func (s *OrderService) cancelAutoDeliver(orderID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[orderID]; ok {
		t.Stop()
		delete(s.timers, orderID)
	}
}

// autoDeliver re-reads the order before acting: the status may have changed
// while the timer was pending.
func (s *OrderService) autoDeliver(orderID uint) {
	s.mu.Lock()
	delete(s.timers, orderID)
	s.mu.Unlock()

	var order models.Order
	if err := s.db.Preload("User").First(&order, orderID).Error; err != nil {
		s.log.WithError(err).WithField("order_id", orderID).Warn("order: auto-deliver lookup failed")
		return
	}
	if order.Status != models.OrderStatusProcessing {
		return
	}

	if err := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusProcessing).
		Update("status", models.OrderStatusDelivered).Error; err != nil {
		s.log.WithError(err).WithField("order_id", orderID).Warn("order: auto-deliver update failed")
		return
	}
	order.Status = models.OrderStatusDelivered

	s.log.WithField("order_number", order.OrderNumber).Info("order: auto-delivered")
	s.notifyStatus(&order, models.OrderStatusDisplay(models.OrderStatusDelivered))
}

// notifyStatus sends the status email if the user wants one. Failures are
// logged and swallowed: notification is never worth reverting a transition.
func (s *OrderService) notifyStatus(order *models.Order, statusText string) {
	if s.mailer == nil || order.User == nil {
		return
	}
	if !order.User.EmailNotificationsEnabled {
		return
	}
	if err := s.mailer.SendOrderStatusEmail(order.User.Email, order.OrderNumber, statusText); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_number": order.OrderNumber,
			"recipient":    order.User.Email,
		}).Warn("order: status email failed")
	}
}
