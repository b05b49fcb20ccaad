package models

import "time"

type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"not null" json:"name"`
	Slug          string        `gorm:"uniqueIndex;not null" json:"slug"`
	URL           string        `json:"url"`
	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"subCategories,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type SubCategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	CategoryID uint      `gorm:"index;not null" json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Product struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Slug              string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description       string    `json:"description"`
	Price             float64   `gorm:"not null" json:"price"`
	Currency          string    `gorm:"default:PKR" json:"currency"`
	SKU               string    `gorm:"uniqueIndex;not null" json:"SKU"`
	Inventory         int       `gorm:"not null" json:"inventory"`
	CategoryID        uint      `gorm:"index;not null" json:"categoryId"`
	SubCategoryID     *uint     `gorm:"index" json:"subCategoryId"`
	StoreID           uint      `gorm:"index" json:"storeId"`
	Tags              []string  `gorm:"serializer:json" json:"tags"`
	Images            []string  `gorm:"serializer:json" json:"images"`
	IsFeatured        bool      `gorm:"default:false" json:"isFeatured"`
	Rating            int       `gorm:"default:0" json:"rating"`
	Brand             string    `json:"brand"`
	Weight            int       `gorm:"default:0" json:"weight"`
	Dimensions        string    `json:"dimensions"`
	IsDiscount        bool      `gorm:"default:false" json:"isDiscount"`
	DiscountPrice     *float64  `json:"discountPrice"`
	Score             int       `gorm:"default:0" json:"score"`
	FreebieProductIDs []uint    `gorm:"serializer:json" json:"freebieProductIDs"`
	RelatedProductIDs []uint    `gorm:"serializer:json" json:"relatedProductIDs"`
	FreeDelivery      bool      `gorm:"default:false" json:"freeDelivery"`
	TotalSold         int       `gorm:"default:0" json:"totalSold"`
	IsActive          bool      `gorm:"default:true" json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
