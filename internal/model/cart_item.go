package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a line of the shared shopping cart being built on the floor.
// The whole collection is cleared by RAZ.
type CartItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductName string          `gorm:"not null" json:"productName"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	VendorID    string          `gorm:"index" json:"vendorId"`
	AddedAt     int64           `gorm:"not null" json:"addedAt"`
}

func (CartItem) TableName() string { return "cart_items" }
