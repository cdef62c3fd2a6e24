package models

import "time"

type Review struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	ProductID   uint       `gorm:"not null;index" json:"product_id"`
	Rating      int        `gorm:"not null" json:"rating"` // 1..5
	Comment     string     `gorm:"size:1000" json:"comment"`
	CreatedDate time.Time  `gorm:"autoCreateTime" json:"created_date"`
	UpdatedDate *time.Time `json:"updated_date"`
	IsVerified  bool       `gorm:"default:false" json:"is_verified"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
