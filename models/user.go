package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null;size:256" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null;size:100" json:"name"`
	Phone        string `gorm:"size:20" json:"phone"`
	Address      string `gorm:"size:500" json:"address"`
	Role         string `gorm:"not null;size:20;default:'User'" json:"role"`
	Status       string `gorm:"not null;size:20;default:'Active'" json:"status"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`

	IsEmailVerified           bool   `gorm:"default:false" json:"is_email_verified"`
	VerificationCode          string `gorm:"size:6" json:"-"`
	EmailNotificationsEnabled bool   `gorm:"default:true" json:"email_notifications_enabled"`

	CreatedDate   time.Time `gorm:"autoCreateTime" json:"created_date"`
	LastLoginDate time.Time `json:"last_login_date"`

	Orders        []Order        `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CartItems     []CartItem     `gorm:"foreignKey:UserID" json:"cart_items,omitempty"`
	WishListItems []WishListItem `gorm:"foreignKey:UserID" json:"wish_list_items,omitempty"`
	Reviews       []Review       `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}
