package model

import (
	"github.com/shopspring/decimal"
)

// VendorStat is the per-vendor line of a RAZ snapshot. DailySales is the
// day-of figure; TotalSales the cumulative one (kept for display only).
type VendorStat struct {
	Name       string          `json:"name"`
	DailySales decimal.Decimal `json:"dailySales"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// Invoice is an external invoice synchronized from the workflow backend (n8n).
// It reaches this system already shaped — there is no ingestion logic here.
type Invoice struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	ClientName string          `json:"clientName"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Date       int64           `json:"date"`
}

// RAZFullData is the deep, independently-owned copy of the live state embedded
// in a history entry. Later mutation of live sales/invoices must never be able
// to corrupt an archived snapshot.
type RAZFullData struct {
	Sales       []Sale       `json:"sales"`
	Invoices    []Invoice    `json:"invoices"`
	VendorStats []VendorStat `json:"vendorStats"`
}

// RAZHistoryEntry is one end-of-session snapshot, appended when the register
// is reset. Totals are day-of figures, not session-cumulative ones — a
// cumulative figure would double-count everything archived by prior resets.
type RAZHistoryEntry struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	Date         int64           `gorm:"not null;index" json:"date"`
	SessionName  string          `json:"sessionName"`
	SessionStart *int64          `json:"sessionStart,omitempty"`
	SessionEnd   *int64          `json:"sessionEnd,omitempty"`
	TotalSales   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalSales"`
	TotalCash    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalCash"`
	TotalCard    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalCard"`
	TotalChecks  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalChecks"`
	VendorStats  []VendorStat    `gorm:"serializer:json" json:"vendorStats"`
	SalesCount   int             `gorm:"not null;default:0" json:"salesCount"`
	EmailContent *string         `gorm:"type:text" json:"emailContent,omitempty"`
	CashSheetHTML *string        `gorm:"type:text" json:"cashSheetHtml,omitempty"`
	FullData     RAZFullData     `gorm:"serializer:json" json:"fullData"`
}

func (RAZHistoryEntry) TableName() string { return "raz_history" }
