package models

import (
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FirstName    string    `gorm:"not null"                 json:"firstName"`
	LastName     string    `gorm:"not null"                 json:"lastName"`
	Address      string    `gorm:"not null"                 json:"address"`
	Apartment    string    `json:"apartment"`
	City         string    `gorm:"not null"                 json:"city"`
	State        string    `gorm:"not null"                 json:"state"`
	Pincode      string    `gorm:"not null"                 json:"pincode"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Product mirrors one entry of the external catalog; ProductID is the
// catalog's key, ID is ours.
type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   string    `gorm:"uniqueIndex;not null"     json:"productId"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;not null"           json:"productId"`
	UserID    uint      `gorm:"not null"                 json:"userId"`
	UserName  string    `gorm:"not null"                 json:"userName"`
	Comment   string    `gorm:"not null"                 json:"comment"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderProduct is a line item frozen at placement time.
type OrderProduct struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Quantity  uint    `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// ShippingDetails is the address snapshot captured at placement; later
// profile edits do not touch it.
type ShippingDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Email           string          `gorm:"index;not null"           json:"email"`
	Products        []OrderProduct  `gorm:"serializer:json"          json:"products"`
	TotalAmount     float64         `gorm:"not null"                 json:"totalAmount"`
	ShippingDetails ShippingDetails `gorm:"serializer:json"          json:"shippingDetails"`
	Status          string          `gorm:"not null;default:pending" json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
