package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JIexa3/StoreOfHandWork/models"
)

// InventoryService answers "how much of product P can still be promised" and
// applies the irreversible stock changes. Reads treat every open cart row as
// provisionally consuming stock (soft figure); writes go through row locks.
type InventoryService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewInventoryService(db *gorm.DB, log *logrus.Logger) *InventoryService {
	return &InventoryService{db: db, log: log}
}

// lockForUpdate takes a FOR UPDATE row lock on dialects that have one.
// SQLite has no row locks; its single-writer model serializes these paths.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AvailableQuantity returns max(0, stock - sum of all cart reservations).
// Unknown products count as zero stock: fail closed, never fail open.
func (s *InventoryService) AvailableQuantity(productID uint) int {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithError(err).WithField("product_id", productID).Warn("inventory: product lookup failed")
		}
		return 0
	}

	reserved, err := s.reservedQuantity(productID, nil)
	if err != nil {
		return 0
	}
	if avail := product.StockQuantity - reserved; avail > 0 {
		return avail
	}
	return 0
}

// IsReservable reports whether requested units fit on top of every other
// cart's reservation. excludeCartItemID skips the row being edited so its
// current quantity is not double-counted.
func (s *InventoryService) IsReservable(productID uint, requested int, excludeCartItemID *uint) bool {
	if requested <= 0 {
		return false
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return false
	}
	if !product.IsActive {
		return false
	}

	reserved, err := s.reservedQuantity(productID, excludeCartItemID)
	if err != nil {
		return false
	}
	return product.StockQuantity >= reserved+requested
}

// CommitDecrement irreversibly subtracts from real stock. Callers must hold a
// transaction and must have re-checked availability just before: the cart-time
// figure may be stale by now. The row lock keeps the ledger itself from going
// negative even then.
func (s *InventoryService) CommitDecrement(tx *gorm.DB, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	var product models.Product
	if err := lockForUpdate(tx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return err
	}

	if product.StockQuantity < quantity {
		return &InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.StockQuantity,
		}
	}

	product.StockQuantity -= quantity
	return tx.Save(&product).Error
}

// Restock adds units back after a completed refund or exchange.
func (s *InventoryService) Restock(tx *gorm.DB, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	var product models.Product
	if err := lockForUpdate(tx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return err
	}

	product.StockQuantity += quantity
	return tx.Save(&product).Error
}

// reservedQuantity sums cart reservations for a product across all users,
// optionally leaving one cart row out.
func (s *InventoryService) reservedQuantity(productID uint, excludeCartItemID *uint) (int, error) {
	var reserved int64
	q := s.db.Model(&models.CartItem{}).Where("product_id = ?", productID)
	if excludeCartItemID != nil {
		q = q.Where("id <> ?", *excludeCartItemID)
	}
	if err := q.Select("COALESCE(SUM(quantity), 0)").Scan(&reserved).Error; err != nil {
		s.log.WithError(err).WithField("product_id", productID).Warn("inventory: reservation sum failed")
		return 0, err
	}
	return int(reserved), nil
}
