package models

import "time"

// CartItem is a soft reservation: it lowers the displayed availability of a
// product but does not touch Product.StockQuantity until checkout commits.
// One row per (user, product); quantities are merged on repeated adds.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	DateAdded time.Time `gorm:"autoCreateTime" json:"date_added"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
