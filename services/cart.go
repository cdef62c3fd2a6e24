package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// CartService accumulates a user's pending selections within the inventory
// ledger's soft limits. One row per (user, product); repeated adds merge.
type CartService struct {
	db        *gorm.DB
	inventory *InventoryService
	log       *logrus.Logger
}

func NewCartService(db *gorm.DB, inventory *InventoryService, log *logrus.Logger) *CartService {
	return &CartService{db: db, inventory: inventory, log: log}
}

// Add puts quantity units of a product into the user's cart, merging with an
// existing row when there is one. The merged total is validated against the
// ledger with the existing row excluded so it is not counted twice.
func (s *CartService) Add(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	var existing models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	switch {
	case err == nil:
		merged := existing.Quantity + quantity
		if !s.inventory.IsReservable(productID, merged, &existing.ID) {
			return nil, s.insufficient(&product, merged, &existing.ID)
		}
		existing.Quantity = merged
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if !s.inventory.IsReservable(productID, quantity, nil) {
			return nil, s.insufficient(&product, quantity, nil)
		}
		item := models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil

	default:
		return nil, err
	}
}

// SetQuantity replaces a cart row's quantity, re-validating against the
// ledger with the row itself excluded.
func (s *CartService) SetQuantity(cartItemID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var item models.CartItem
	if err := s.db.First(&item, cartItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %d: %w", cartItemID, ErrNotFound)
		}
		return nil, err
	}

	if !s.inventory.IsReservable(item.ProductID, quantity, &item.ID) {
		var product models.Product
		if err := s.db.First(&product, item.ProductID).Error; err != nil {
			return nil, ErrProductUnavailable
		}
		return nil, s.insufficient(&product, quantity, &item.ID)
	}

	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Remove deletes a cart row unconditionally.
func (s *CartService) Remove(cartItemID uint) error {
	res := s.db.Delete(&models.CartItem{}, cartItemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d: %w", cartItemID, ErrNotFound)
	}
	return nil
}

// Items lists the user's cart with products attached.
func (s *CartService) Items(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("date_added").
		Find(&items).Error
	return items, err
}

// TotalValue sums quantity * current price at read time, so the figure always
// reflects today's catalog prices rather than a cached total.
func (s *CartService) TotalValue(userID uint) (float64, error) {
	items, err := s.Items(userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total += item.Product.Price * float64(item.Quantity)
	}
	return total, nil
}

// ClearCart removes every cart row of a user. Checkout does this inside its
// own transaction; this variant backs the explicit "empty cart" action.
func (s *CartService) ClearCart(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (s *CartService) insufficient(product *models.Product, requested int, exclude *uint) error {
	available := 0
	if reserved, err := s.inventory.reservedQuantity(product.ID, exclude); err == nil {
		if avail := product.StockQuantity - reserved; avail > 0 {
			available = avail
		}
	}
	return &InsufficientStockError{
		ProductID:   product.ID,
		ProductName: product.Name,
		Requested:   requested,
		Available:   available,
	}
}
