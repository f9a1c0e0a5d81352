package dto

import (
	"github.com/shopspring/decimal"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

// SaleItemRequest is one product line of a register ticket.
type SaleItemRequest struct {
	StockID     string          `json:"stockId" validate:"required"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"min=0"`
}

// RegisterSaleRequest records a sale. ID comes from the client so that
// offline-queued tickets stay idempotent on replay.
type RegisterSaleRequest struct {
	ID            string              `json:"id" validate:"required"`
	VendorID      string              `json:"vendorId" validate:"required"`
	TotalAmount   decimal.Decimal     `json:"totalAmount" validate:"required,gt=0"`
	PaymentMethod string              `json:"paymentMethod" validate:"required,oneof=cash card check multi"`
	CheckDetails  *model.CheckDetails `json:"checkDetails,omitempty"`
	Items         []SaleItemRequest   `json:"items" validate:"dive"`
	Date          int64               `json:"date"`
}

// RestockRequest registers a replenishment on a stock reference.
type RestockRequest struct {
	StockID  string `json:"stockId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason"`
}

// AdjustStockRequest corrects a physical level after a manual count. Delta is
// signed; the reason is mandatory because corrections are audited.
type AdjustStockRequest struct {
	StockID string `json:"stockId" validate:"required"`
	Delta   int    `json:"delta" validate:"required"`
	Reason  string `json:"reason" validate:"required"`
}
