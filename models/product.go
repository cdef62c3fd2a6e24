package models

import (
	"time"
)

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null;size:200" json:"name"`
	Description   string    `gorm:"size:2000" json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
	ImagePath     string    `json:"image_path"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CategoryID    uint      `gorm:"index" json:"category_id"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags          []Tag     `gorm:"many2many:product_tags" json:"tags,omitempty"`
	CreatedDate   time.Time `gorm:"autoCreateTime" json:"created_date"`
}
