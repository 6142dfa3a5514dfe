package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Reference       string          `json:"reference" gorm:"size:64;uniqueIndex;not null"`
	UserID          uint            `json:"-" gorm:"not null;index"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:numeric(10,2);not null"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee" gorm:"type:numeric(10,2);not null"`
	DeliveryAddress string          `json:"delivery_address" gorm:"size:255;not null"`
	OrderDate       time.Time       `json:"order_date" gorm:"not null;index"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots the coffee name and price at checkout time.
type OrderItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	OrderID      uint            `json:"-" gorm:"not null;index"`
	CoffeeName   string          `json:"coffee_name" gorm:"size:50;not null"`
	SelectedSize string          `json:"selected_size" gorm:"size:10;not null"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:numeric(10,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	TotalPrice   decimal.Decimal `json:"total_price" gorm:"type:numeric(10,2);not null"`
}
