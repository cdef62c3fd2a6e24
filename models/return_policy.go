package models

import "time"

// ReturnPolicy is versioned: rows are never overwritten in place, and at most
// one row is active at a time. History stays queryable.
type ReturnPolicy struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title              string    `gorm:"not null;size:100" json:"title"`
	ReturnPeriodDays   int       `gorm:"not null" json:"return_period_days"`
	GeneralConditions  string    `gorm:"size:2000" json:"general_conditions"`
	ExcludedCategories string    `gorm:"size:2000" json:"excluded_categories"`
	RefundPolicy       string    `gorm:"size:2000" json:"refund_policy"`
	ExchangePolicy     string    `gorm:"size:2000" json:"exchange_policy"`
	IsActive           bool      `gorm:"not null;default:false" json:"is_active"`
	LastUpdated        time.Time `gorm:"autoUpdateTime" json:"last_updated"`
	UpdatedBy          string    `gorm:"size:100" json:"updated_by"`
}
