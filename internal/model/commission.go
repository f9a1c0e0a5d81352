package model

import (
	"github.com/shopspring/decimal"
)

// Commission business constants. Fixed rules, not configuration: Sylvie is the
// house's own saleswoman (no lodging allowance, reduced rate), everyone else
// travels on the standard contract.
const (
	CommissionRateStandard = 20
	CommissionRateSylvie   = 17

	// DailySalaryDefault is the flat per-day salary every row starts from.
	DailySalaryDefault = 140

	// CommissionThreshold marks the daily revenue above which a row is
	// flagged. The flag is informational: it never alters the salary here,
	// the adjustment is negotiated by hand at the end of the event.
	CommissionThreshold = 1500

	ForfaitLogementStandard = 300
)

// CommissionDailyRow is one calendar day of a vendor's commission table.
type CommissionDailyRow struct {
	Date             string          `json:"date"` // DD/MM/YYYY
	DateMs           int64           `json:"dateMs"`
	Cheque           decimal.Decimal `json:"cheque"`
	CB               decimal.Decimal `json:"cb"`
	Espece           decimal.Decimal `json:"espece"`
	Total            decimal.Decimal `json:"total"`
	IsAboveThreshold bool            `json:"isAboveThreshold"`
	Salary           decimal.Decimal `json:"salary"`
}

// CommissionTable is the per-vendor commission skeleton generated when a
// session opens: one daily row per calendar day of [EventStart, EventEnd].
// Money fields start at zero and are filled in by the aggregation step.
type CommissionTable struct {
	VendorID        string               `json:"vendorId"`
	VendorName      string               `json:"vendorName"`
	CommissionRate  int                  `json:"commissionRate"`
	DailyRows       []CommissionDailyRow `json:"dailyRows"`
	GrandTotal      decimal.Decimal      `json:"grandTotal"`
	TotalSalary     decimal.Decimal      `json:"totalSalary"`
	ForfaitLogement decimal.Decimal      `json:"forfaitLogement"`
	FraisTransport  decimal.Decimal      `json:"fraisTransport"`
	NetAPayer       decimal.Decimal      `json:"netAPayer"`
}
