package model

import (
	"github.com/shopspring/decimal"
)

// Vendor is one saleswoman of the roster. The roster is long-lived: RAZ zeroes
// the counters but never deletes the row — identity (ID, Name) survives every reset.
//
// Active is a pointer on purpose: legacy rosters imported from the old cash
// register have no flag at all, and "absent" must stay distinguishable from
// "explicitly inactive" for the commission allow-list fallback.
type Vendor struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null;index" json:"name"`
	Active        *bool           `json:"active,omitempty"`
	TotalSales    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalSales"`
	DailySales    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"dailySales"`
	SalesCount    int             `gorm:"not null;default:0" json:"salesCount"`
	AverageTicket decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"averageTicket"`
	LastSaleDate  *int64          `json:"lastSaleDate,omitempty"`
	LastUpdate    int64           `gorm:"not null" json:"lastUpdate"`
}

func (Vendor) TableName() string { return "vendors" }
