package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorAnalytics is a per-vendor per-day revenue aggregate, rebuilt from
// scratch each session. Cleared entirely by RAZ.
type VendorAnalytics struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID   string          `gorm:"index;not null" json:"vendorId"`
	Day        string          `gorm:"type:varchar(10);not null" json:"day"` // YYYY-MM-DD
	Revenue    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"revenue"`
	SalesCount int             `gorm:"not null;default:0" json:"salesCount"`
}

func (VendorAnalytics) TableName() string { return "vendor_analytics" }

// ProductAnalytics aggregates quantities sold per product reference.
// Cleared entirely by RAZ.
type ProductAnalytics struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductName  string          `gorm:"index;not null" json:"productName"`
	QuantitySold int             `gorm:"not null;default:0" json:"quantitySold"`
	Revenue      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"revenue"`
}

func (ProductAnalytics) TableName() string { return "product_analytics" }

// CacheEntry is a generic structured-tier cache row (pre-computed report
// fragments, sync cursors…). The whole collection is disposable and cleared by RAZ.
type CacheEntry struct {
	Key       string `gorm:"primaryKey" json:"key"`
	Value     string `gorm:"type:text" json:"value"`
	ExpiresAt *int64 `json:"expiresAt,omitempty"`
}

func (CacheEntry) TableName() string { return "cache" }
