package models

type PickupPoint struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"not null;size:100" json:"name"`
	Address      string  `gorm:"not null;size:200" json:"address"`
	Latitude     float64 `gorm:"not null" json:"latitude"`
	Longitude    float64 `gorm:"not null" json:"longitude"`
	WorkingHours string  `gorm:"size:100" json:"working_hours"`
	Phone        string  `gorm:"size:20" json:"phone"`

	Orders []Order `gorm:"foreignKey:PickupPointID" json:"orders,omitempty"`
}
