package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

func newTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))
	return db
}

func TestSessionLifecycle(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t, &model.Session{}))
	ctx := context.Background()
	name := "Foire de Perpignan"
	session := &model.Session{ID: uuid.New(), EventName: &name, OpenedAt: 1000, Statut: "ouverte"}

	require.NoError(t, repo.Create(ctx, session))

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.ID, open.ID)

	require.NoError(t, repo.Close(ctx, session.ID, 2000))

	_, err = repo.FindOpen(ctx)
	assert.ErrorIs(t, err, ErrNoOpenSession)

	closed, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "fermee", closed.Statut)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, int64(2000), *closed.ClosedAt)
}

func TestSessionClearAll(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t, &model.Session{}))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Session{ID: uuid.New(), OpenedAt: 1, Statut: "fermee"}))
	require.NoError(t, repo.Create(ctx, &model.Session{ID: uuid.New(), OpenedAt: 2, Statut: "ouverte"}))

	require.NoError(t, repo.ClearAll(ctx))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVendorApplySaleAndResetCounters(t *testing.T) {
	repo := NewVendorRepository(newTestDB(t, &model.Vendor{}))
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, &model.Vendor{ID: "sylvie", Name: "Sylvie", LastUpdate: 1}))

	require.NoError(t, repo.ApplySale(ctx, "sylvie", decimal.NewFromInt(100), 1000))
	require.NoError(t, repo.ApplySale(ctx, "sylvie", decimal.NewFromInt(50), 2000))

	v, err := repo.FindByID(ctx, "sylvie")
	require.NoError(t, err)
	assert.True(t, v.TotalSales.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 2, v.SalesCount)
	assert.True(t, v.AverageTicket.Equal(decimal.NewFromInt(75)))
	require.NotNil(t, v.LastSaleDate)
	assert.Equal(t, int64(2000), *v.LastSaleDate)

	require.NoError(t, repo.ResetCounters(ctx, 3000))

	v, err = repo.FindByID(ctx, "sylvie")
	require.NoError(t, err)
	assert.Equal(t, "Sylvie", v.Name, "l'identité survit à la remise à zéro")
	assert.True(t, v.TotalSales.IsZero())
	assert.Zero(t, v.SalesCount)
	assert.Nil(t, v.LastSaleDate)
	assert.Equal(t, int64(3000), v.LastUpdate)
}

func TestVendorUpsertKeepsCounters(t *testing.T) {
	repo := NewVendorRepository(newTestDB(t, &model.Vendor{}))
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, &model.Vendor{ID: "sylvie", Name: "Sylvie", LastUpdate: 1}))
	require.NoError(t, repo.ApplySale(ctx, "sylvie", decimal.NewFromInt(100), 1000))

	// Re-seeding the roster must not wipe accumulated counters.
	require.NoError(t, repo.Upsert(ctx, &model.Vendor{ID: "sylvie", Name: "Sylvie B.", LastUpdate: 2}))

	v, err := repo.FindByID(ctx, "sylvie")
	require.NoError(t, err)
	assert.Equal(t, "Sylvie B.", v.Name)
	assert.True(t, v.TotalSales.Equal(decimal.NewFromInt(100)))
}

func TestSaleCancelAndClearAll(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t, &model.Sale{}))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Sale{
		ID: "t1", VendorID: "sylvie", VendorName: "Sylvie",
		TotalAmount: decimal.NewFromInt(450), PaymentMethod: "card", Date: 1000,
	}))

	require.NoError(t, repo.Cancel(ctx, "t1"))
	s, err := repo.FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, s.Canceled)

	require.NoError(t, repo.ClearAll(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaleCheckDetailsRoundTrip(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t, &model.Sale{}))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Sale{
		ID: "t1", VendorID: "sylvie", VendorName: "Sylvie",
		TotalAmount: decimal.NewFromInt(900), PaymentMethod: "check", Date: 1000,
		CheckDetails: &model.CheckDetails{Count: 3, Amount: decimal.NewFromInt(300)},
	}))

	s, err := repo.FindByID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, s.CheckDetails)
	assert.Equal(t, 3, s.CheckDetails.Count)
	assert.True(t, s.CheckDetails.Amount.Equal(decimal.NewFromInt(300)))
}

func TestStockMovementsDeleteByType(t *testing.T) {
	repo := NewStockRepository(newTestDB(t, &model.Stock{}, &model.StockMovement{}))
	ctx := context.Background()
	require.NoError(t, repo.CreateMovement(ctx, &model.StockMovement{ID: uuid.New(), StockID: "a", Type: "sale", Quantity: -1}))
	require.NoError(t, repo.CreateMovement(ctx, &model.StockMovement{ID: uuid.New(), StockID: "a", Type: "restock", Quantity: 5}))
	require.NoError(t, repo.CreateMovement(ctx, &model.StockMovement{ID: uuid.New(), StockID: "b", Type: "sale", Quantity: -2}))

	require.NoError(t, repo.DeleteMovementsByType(ctx, "sale"))

	saleCount, err := repo.CountMovementsByType(ctx, "sale")
	require.NoError(t, err)
	assert.Zero(t, saleCount)
	restockCount, err := repo.CountMovementsByType(ctx, "restock")
	require.NoError(t, err)
	assert.Equal(t, int64(1), restockCount)
}

func TestStockAdjustPhysical(t *testing.T) {
	repo := NewStockRepository(newTestDB(t, &model.Stock{}, &model.StockMovement{}))
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &model.Stock{ID: "matelas-140", ProductName: "Matelas 140", PhysicalStock: 10, LastUpdate: 1}))

	require.NoError(t, repo.AdjustPhysical(ctx, "matelas-140", -3, 2000))

	s, err := repo.FindByID(ctx, "matelas-140")
	require.NoError(t, err)
	assert.Equal(t, 7, s.PhysicalStock)
	assert.Equal(t, int64(2000), s.LastUpdate)
}

func TestHistoryDeleteOldest(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t, &model.RAZHistoryEntry{}))
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Create(ctx, &model.RAZHistoryEntry{
			ID: uuid.NewString(), Date: int64(i * 1000),
		}))
	}

	deleted, err := repo.DeleteOldest(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	// The two newest entries survive, newest first.
	assert.Equal(t, int64(5000), remaining[0].Date)
	assert.Equal(t, int64(4000), remaining[1].Date)
}

func TestHistoryFullDataRoundTrip(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t, &model.RAZHistoryEntry{}))
	ctx := context.Background()
	entry := &model.RAZHistoryEntry{
		ID:   "raz_1_abcdefgh",
		Date: 1000,
		VendorStats: []model.VendorStat{
			{Name: "Sylvie", DailySales: decimal.NewFromInt(100), TotalSales: decimal.NewFromInt(100)},
		},
		FullData: model.RAZFullData{
			Sales:       []model.Sale{{ID: "t1", VendorID: "sylvie", VendorName: "Sylvie", TotalAmount: decimal.NewFromInt(100), PaymentMethod: "cash", Date: 1}},
			Invoices:    []model.Invoice{},
			VendorStats: []model.VendorStat{},
		},
	}

	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, got.VendorStats, 1)
	assert.Equal(t, "Sylvie", got.VendorStats[0].Name)
	require.Len(t, got.FullData.Sales, 1)
	assert.Equal(t, "t1", got.FullData.Sales[0].ID)
}

func TestArchiveRepoDegradesWithoutTable(t *testing.T) {
	// Database without the archive add-on schema: every operation degrades
	// instead of erroring.
	repo := NewArchiveRepository(newTestDB(t))
	ctx := context.Background()

	assert.NoError(t, repo.Save(ctx, &model.CommissionArchive{ID: "x"}))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestArchiveRepoSaveIsUpsert(t *testing.T) {
	repo := NewArchiveRepository(newTestDB(t, &model.CommissionArchive{}))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &model.CommissionArchive{ID: "a", SessionID: "s", Type: "opening", Tables: "[]", ArchivedAt: 1}))
	require.NoError(t, repo.Save(ctx, &model.CommissionArchive{ID: "a", SessionID: "s", Type: "opening", Tables: "[1]", ArchivedAt: 2}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "[1]", got.Tables)
	assert.Equal(t, int64(2), got.ArchivedAt)
}

func TestCacheRepoUpsertAndClear(t *testing.T) {
	repo := NewCacheRepository(newTestDB(t, &model.CacheEntry{}))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, &model.CacheEntry{Key: "k", Value: "v1"}))
	require.NoError(t, repo.Set(ctx, &model.CacheEntry{Key: "k", Value: "v2"}))

	entry, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", entry.Value)

	require.NoError(t, repo.ClearAll(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
