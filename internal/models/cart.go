package models

import "time"

// CartItem holds one pending product selection. A user carries at most one row
// per product, enforced by the composite unique index.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"userId"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
