package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckDetails describes a payment split into several post-dated checks.
// A sale carrying check details is NOT instantaneous revenue: it is accounted
// under "règlements à venir" and excluded from the check total of a RAZ snapshot.
type CheckDetails struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Sale is one register ticket. IDs are generated client-side (the iPad keeps
// working offline) so the primary key is the caller-provided string.
// PaymentMethod: "cash" | "card" | "check" | "multi"
type Sale struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	VendorID      string          `gorm:"index;not null" json:"vendorId"`
	VendorName    string          `gorm:"not null" json:"vendorName"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	PaymentMethod string          `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	Canceled      bool            `gorm:"not null;default:false" json:"canceled"`
	CheckDetails  *CheckDetails   `gorm:"serializer:json" json:"checkDetails,omitempty"`
	// Date is the business timestamp of the sale in epoch milliseconds.
	Date      int64     `gorm:"not null;index" json:"date"`
	CreatedAt time.Time `json:"-"`
}

func (Sale) TableName() string { return "sales" }
