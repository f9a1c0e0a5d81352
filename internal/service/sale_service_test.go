package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/dto"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
)

type saleFixture struct {
	sales     *stubSaleRepo
	vendors   *stubVendorRepo
	stocks    *stubStockRepo
	analytics *stubAnalyticsRepo
	svc       SaleService
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		sales: &stubSaleRepo{},
		vendors: &stubVendorRepo{vendors: []*model.Vendor{
			{ID: "sylvie", Name: "Sylvie"},
		}},
		stocks: &stubStockRepo{stocks: []*model.Stock{
			{ID: "matelas-140", ProductName: "Matelas 140", PhysicalStock: 10},
		}},
		analytics: &stubAnalyticsRepo{},
	}
	f.svc = NewSaleService(f.sales, f.vendors, f.stocks, f.analytics)
	return f
}

func ticketRequest(id string) dto.RegisterSaleRequest {
	return dto.RegisterSaleRequest{
		ID:            id,
		VendorID:      "sylvie",
		TotalAmount:   dec(450),
		PaymentMethod: "card",
		Date:          ms(2025, 8, 29),
		Items: []dto.SaleItemRequest{
			{StockID: "matelas-140", ProductName: "Matelas 140", Quantity: 2, UnitPrice: dec(225)},
		},
	}
}

func TestRegisterSaleHappyPath(t *testing.T) {
	f := newSaleFixture()

	sale, err := f.svc.Register(context.Background(), ticketRequest("t1"))
	require.NoError(t, err)

	assert.Equal(t, "Sylvie", sale.VendorName)
	assert.Equal(t, ms(2025, 8, 29), sale.Date)

	// Vendor counters folded in.
	vendor := f.vendors.vendors[0]
	assert.Equal(t, "450", vendor.TotalSales.String())
	assert.Equal(t, 1, vendor.SalesCount)

	// Stock decremented with one sale movement per line.
	stock, _ := f.stocks.FindByID(context.Background(), "matelas-140")
	assert.Equal(t, 8, stock.PhysicalStock)
	require.Len(t, f.stocks.movements, 1)
	assert.Equal(t, "sale", f.stocks.movements[0].Type)
	assert.Equal(t, -2, f.stocks.movements[0].Quantity)
	assert.Equal(t, "vente t1", f.stocks.movements[0].Reason)

	assert.Equal(t, 1, f.analytics.recorded)
}

func TestRegisterSaleIdempotentByClientID(t *testing.T) {
	f := newSaleFixture()
	_, err := f.svc.Register(context.Background(), ticketRequest("t1"))
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), ticketRequest("t1"))

	require.Error(t, err)
	assert.Len(t, f.sales.sales, 1)
	stock, _ := f.stocks.FindByID(context.Background(), "matelas-140")
	assert.Equal(t, 8, stock.PhysicalStock, "le rejeu ne décrémente pas le stock une deuxième fois")
}

func TestRegisterSaleUnknownVendor(t *testing.T) {
	f := newSaleFixture()
	req := ticketRequest("t1")
	req.VendorID = "inconnue"

	_, err := f.svc.Register(context.Background(), req)

	assert.Error(t, err)
	assert.Empty(t, f.sales.sales)
}

func TestRegisterSaleAnalyticsFailureIsNonFatal(t *testing.T) {
	f := newSaleFixture()
	f.analytics.recordErr = errStub

	_, err := f.svc.Register(context.Background(), ticketRequest("t1"))

	assert.NoError(t, err)
}

func TestCancelSaleCompensatesStock(t *testing.T) {
	f := newSaleFixture()
	_, err := f.svc.Register(context.Background(), ticketRequest("t1"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(context.Background(), "t1"))

	sale, err := f.sales.FindByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, sale.Canceled)

	// Stock back to its original level via a restock movement — RAZ keeps
	// the compensation while dropping the sale movement.
	stock, _ := f.stocks.FindByID(context.Background(), "matelas-140")
	assert.Equal(t, 10, stock.PhysicalStock)
	restocks, _ := f.stocks.ListMovements(context.Background(), repository.StockMovementFilter{Type: "restock"})
	require.Len(t, restocks, 1)
	assert.Equal(t, 2, restocks[0].Quantity)
	assert.Equal(t, "annulation vente t1", restocks[0].Reason)
}

func TestCancelSaleTwice(t *testing.T) {
	f := newSaleFixture()
	_, err := f.svc.Register(context.Background(), ticketRequest("t1"))
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(context.Background(), "t1"))

	err = f.svc.Cancel(context.Background(), "t1")

	assert.Error(t, err)
	stock, _ := f.stocks.FindByID(context.Background(), "matelas-140")
	assert.Equal(t, 10, stock.PhysicalStock, "pas de double compensation")
}

func TestAdjustStockRecordsSignedCorrection(t *testing.T) {
	f := newSaleFixture()

	err := f.svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		StockID: "matelas-140", Delta: -3, Reason: "comptage physique",
	})
	require.NoError(t, err)

	stock, _ := f.stocks.FindByID(context.Background(), "matelas-140")
	assert.Equal(t, 7, stock.PhysicalStock)
	require.Len(t, f.stocks.movements, 1)
	assert.Equal(t, "adjustment", f.stocks.movements[0].Type)
	assert.Equal(t, -3, f.stocks.movements[0].Quantity)
	assert.Equal(t, "comptage physique", f.stocks.movements[0].Reason)
}

func TestRestockBumpsLevel(t *testing.T) {
	f := newSaleFixture()

	err := f.svc.Restock(context.Background(), dto.RestockRequest{
		StockID: "matelas-140", Quantity: 5, Reason: "livraison camion",
	})
	require.NoError(t, err)

	stock, _ := f.stocks.FindByID(context.Background(), "matelas-140")
	assert.Equal(t, 15, stock.PhysicalStock)
	require.Len(t, f.stocks.movements, 1)
	assert.Equal(t, "restock", f.stocks.movements[0].Type)
	assert.Equal(t, 5, f.stocks.movements[0].Quantity)
}
