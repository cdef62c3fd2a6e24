package models

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null;size:100" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`
	Products    []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
