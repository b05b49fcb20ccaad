package models

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	UserID               uint           `gorm:"index;not null" json:"userId"`
	TotalAmount          float64        `gorm:"not null" json:"totalAmount"`
	Discount             float64        `gorm:"default:0" json:"discount"`
	DeliveryChargeRuleID *uint          `json:"deliveryChargeRuleId"`
	StoreID              *uint          `gorm:"index" json:"storeId"`
	OrderAddress         map[string]any `gorm:"serializer:json" json:"orderAddress"`
	BillingAddress       map[string]any `gorm:"serializer:json" json:"billingAddress"`
	Status               string         `gorm:"default:pending" json:"status"`
	PaymentStatus        string         `gorm:"default:unpaid" json:"paymentStatus"`
	OrderItems           []OrderItem    `gorm:"foreignKey:OrderID" json:"orderItems"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// OrderItem is a price/quantity snapshot taken at placement time. Rows are
// never updated after creation.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"orderId"`
	ProductID uint      `gorm:"index;not null" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Slug      string    `json:"slug"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
