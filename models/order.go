package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"        // placed, waiting for warehouse collection
	OrderStatusProcessing OrderStatus = "processing" // collected, stock committed
	OrderStatusShipped    OrderStatus = "shipped"    // handed to the pickup point
	OrderStatusDelivered  OrderStatus = "delivered"  // customer received the order
	OrderStatusCancelled  OrderStatus = "cancelled"  // cancelled before collection
)

// OrderStatusDisplay maps a status to its customer-facing text. Kept as a
// plain lookup so presentation never reaches into the workflow rules.
func OrderStatusDisplay(s OrderStatus) string {
	switch s {
	case OrderStatusNew:
		return "Новый"
	case OrderStatusProcessing:
		return "В обработке"
	case OrderStatusShipped:
		return "Отправлен"
	case OrderStatusDelivered:
		return "Доставлен"
	case OrderStatusCancelled:
		return "Отменен"
	default:
		return string(s)
	}
}

type Order struct {
	ID             uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber    string      `gorm:"unique;not null;size:40" json:"order_number"`
	TrackingNumber string      `gorm:"unique;not null;size:40" json:"tracking_number"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	OrderDate      time.Time   `gorm:"not null" json:"order_date"`
	Status         OrderStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	TotalAmount    float64     `gorm:"not null" json:"total_amount"`

	ShippingAddress string `gorm:"not null;size:500" json:"shipping_address"`
	PickupAddress   string `gorm:"size:500" json:"pickup_address"`
	PickupPointID   *uint  `json:"pickup_point_id"`

	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PickupPoint *PickupPoint `gorm:"foreignKey:PickupPointID" json:"pickup_point,omitempty"`
	OrderItems  []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

// OrderItem freezes the unit price at checkout; later catalog price changes
// must not drift into existing orders.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Price       float64 `gorm:"not null" json:"price"`
	IsCollected bool    `gorm:"default:false" json:"is_collected"`

	Order   *Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// GenerateOrderNumber builds a human-readable reference, e.g.
// ORD-20250317142501-a1b2. Collisions are only made unlikely here; the
// unique column constraint is the real guard.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), uuid.NewString()[:4])
}

func GenerateTrackingNumber() string {
	return fmt.Sprintf("TN-%s-%s", time.Now().Format("20060102150405"), uuid.NewString()[:8])
}
