package services

import (
	"errors"
	"fmt"
)

// Validation and business-rule failures are ordinary return values so the
// presentation layer can show the reason; nothing in this package panics.
var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrPickupPointRequired     = errors.New("a pickup point must be selected")
	ErrProductUnavailable      = errors.New("product is unavailable")
	ErrItemsNotCollected       = errors.New("all order items must be collected first")
	ErrOrderNotDelivered       = errors.New("order has not been delivered yet")
	ErrReturnWindowExpired     = errors.New("return window has expired")
	ErrActiveReturnExists      = errors.New("an active return request already exists for this item")
	ErrExchangeProductRequired = errors.New("an exchange product must be selected")
)

// InsufficientStockError carries the requested vs available counts so callers
// can display them.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// TransitionError reports an illegal status change; the entity is left as it was.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid %s status transition: %s -> %s", e.Entity, e.From, e.To)
}
