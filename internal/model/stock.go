package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock is the physical stock level of one product reference (mattresses,
// pillows… carried in the truck). It is the only entity class exempted from
// the full-session reset: levels are snapshotted before the wipe and restored
// after it.
type Stock struct {
	ID            string `gorm:"primaryKey" json:"id"`
	ProductName   string `gorm:"not null" json:"productName"`
	PhysicalStock int    `gorm:"not null;default:0" json:"physicalStock"`
	MinStock      int    `gorm:"not null;default:0" json:"minStock"`
	LastUpdate    int64  `gorm:"not null" json:"lastUpdate"`
}

func (Stock) TableName() string { return "stock" }

// StockMovement records every stock change on a product reference.
// Type: "sale" | "restock" | "adjustment"
// RAZ deletes "sale" movements only — replenishments survive the reset.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StockID   string    `gorm:"index;not null" json:"stockId"`
	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"`
	Quantity  int       `gorm:"not null" json:"quantity"` // positive = in, negative = out
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

func (StockMovement) TableName() string { return "stock_movements" }
