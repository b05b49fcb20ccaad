package models

import "time"

type Voucher struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`
	Amount      float64    `gorm:"not null" json:"amount"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Description string     `json:"description"`
	StoreID     *uint      `gorm:"index" json:"storeId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type DeliveryChargeRule struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DeliveryType  string    `gorm:"not null" json:"deliveryType"`
	MinOrderTotal float64   `gorm:"default:0" json:"minOrderTotal"`
	Charge        float64   `gorm:"not null" json:"charge"`
	Region        string    `json:"region"`
	CreatedAt     time.Time `json:"createdAt"`
}
