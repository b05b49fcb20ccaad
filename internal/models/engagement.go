package models

import "time"

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	ProductID uint      `gorm:"index;not null" json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type View struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	ProductID uint      `gorm:"index;not null" json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	ViewedAt  time.Time `gorm:"autoCreateTime" json:"viewedAt"`
}

type Banner struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Slug       string    `gorm:"not null" json:"slug"`
	URL        string    `gorm:"not null" json:"url"`
	Active     bool      `gorm:"default:false" json:"active"`
	Order      int       `gorm:"column:display_order;default:1" json:"order"`
	ProductID  *uint     `gorm:"index" json:"productId"`
	BannerType int       `json:"bannerType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
