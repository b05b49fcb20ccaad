package models

import "time"

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Username          *string    `gorm:"uniqueIndex" json:"username"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	Password          string     `gorm:"not null" json:"-"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	PhoneNumber       string     `json:"phoneNumber"`
	Address           string     `json:"address"`
	City              string     `json:"city"`
	State             string     `json:"state"`
	ZipCode           string     `json:"zipCode"`
	Country           string     `gorm:"default:PK" json:"country"`
	DateOfBirth       *time.Time `json:"dateOfBirth"`
	Role              string     `json:"role"`
	IsVerified        bool       `gorm:"default:false" json:"isVerified"`
	Code              *string    `json:"-"` // email verification / password reset code
	VerificationCode  *string    `json:"-"` // whatsapp OTP
	Token             string     `json:"token"`
	SocialID          *string    `gorm:"index" json:"socialId"`
	SocialToken       *string    `json:"-"`
	ProfilePictureURL string     `json:"profilePicture"`
	VendorID          *uint      `json:"vendorId"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type Admin struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `gorm:"not null" json:"firstName"`
	LastName    string     `json:"lastName"`
	PhoneNumber string     `json:"phoneNumber"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	ZipCode     string     `json:"zipCode"`
	Country     string     `gorm:"default:PK" json:"country"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Token       string     `json:"token"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	StoreID     *uint      `gorm:"index" json:"storeId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
