package dto

import (
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

// RAZSnapshotRequest carries the aggregated session results to archive right
// before (or during) a reset. Sales/invoices/vendor stats arrive already
// shaped — invoice ingestion happens upstream, in the workflow backend.
type RAZSnapshotRequest struct {
	Sales         []model.Sale       `json:"sales"`
	Invoices      []model.Invoice    `json:"invoices"`
	VendorStats   []model.VendorStat `json:"vendorStats"`
	SessionName   string             `json:"sessionName,omitempty"`
	SessionStart  *int64             `json:"sessionStart,omitempty"`
	SessionEnd    *int64             `json:"sessionEnd,omitempty"`
	EmailContent  *string            `json:"emailContent,omitempty"`
	CashSheetHTML *string            `json:"cashSheetHtml,omitempty"`
}
