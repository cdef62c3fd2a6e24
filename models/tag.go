package models

import "time"

type Tag struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null;size:50" json:"name"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`
	Products    []Product `gorm:"many2many:product_tags" json:"products,omitempty"`
}
