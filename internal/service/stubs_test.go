package service

// In-memory repository stubs shared by the service tests. Each stub keeps
// just enough state to assert on, with per-method error switches to force
// failure paths.

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/store"
)

var errStub = errors.New("stub failure")

// ── sessions ─────────────────────────────────────────────────────────────────

type stubSessionRepo struct {
	open       *model.Session
	closed     []uuid.UUID
	clearedAll bool
	total      int64

	findOpenErr error
	clearErr    error
}

func (r *stubSessionRepo) Create(_ context.Context, s *model.Session) error {
	r.open = s
	r.total++
	return nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Session, error) {
	if r.open != nil && r.open.ID == id {
		return r.open, nil
	}
	return nil, errors.New("not found")
}

func (r *stubSessionRepo) FindOpen(_ context.Context) (*model.Session, error) {
	if r.findOpenErr != nil {
		return nil, r.findOpenErr
	}
	if r.open == nil {
		return nil, repository.ErrNoOpenSession
	}
	return r.open, nil
}

func (r *stubSessionRepo) Close(_ context.Context, id uuid.UUID, _ int64) error {
	r.closed = append(r.closed, id)
	if r.open != nil && r.open.ID == id {
		r.open = nil
	}
	return nil
}

func (r *stubSessionRepo) Count(_ context.Context) (int64, error) { return r.total, nil }

func (r *stubSessionRepo) ClearAll(_ context.Context) error {
	if r.clearErr != nil {
		return r.clearErr
	}
	r.clearedAll = true
	r.total = 0
	r.open = nil
	return nil
}

var _ repository.SessionRepository = (*stubSessionRepo)(nil)

// ── sales ────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales      []*model.Sale
	clearedAll bool
	clearErr   error
}

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	r.sales = append(r.sales, s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id string) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) Cancel(_ context.Context, id string) error {
	for _, s := range r.sales {
		if s.ID == id {
			s.Canceled = true
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubSaleRepo) Count(_ context.Context) (int64, error) { return int64(len(r.sales)), nil }

func (r *stubSaleRepo) ClearAll(_ context.Context) error {
	if r.clearErr != nil {
		return r.clearErr
	}
	r.clearedAll = true
	r.sales = nil
	return nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── cart ─────────────────────────────────────────────────────────────────────

type stubCartRepo struct {
	items      []model.CartItem
	clearedAll bool
}

func (r *stubCartRepo) Add(_ context.Context, item *model.CartItem) error {
	r.items = append(r.items, *item)
	return nil
}

func (r *stubCartRepo) List(_ context.Context) ([]model.CartItem, error) { return r.items, nil }

func (r *stubCartRepo) Count(_ context.Context) (int64, error) { return int64(len(r.items)), nil }

func (r *stubCartRepo) ClearAll(_ context.Context) error {
	r.clearedAll = true
	r.items = nil
	return nil
}

var _ repository.CartRepository = (*stubCartRepo)(nil)

// ── vendors ──────────────────────────────────────────────────────────────────

type stubVendorRepo struct {
	vendors []*model.Vendor
	listErr error
}

func (r *stubVendorRepo) Upsert(_ context.Context, v *model.Vendor) error {
	r.vendors = append(r.vendors, v)
	return nil
}

func (r *stubVendorRepo) FindByID(_ context.Context, id string) (*model.Vendor, error) {
	for _, v := range r.vendors {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubVendorRepo) List(_ context.Context) ([]model.Vendor, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]model.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVendorRepo) ApplySale(_ context.Context, id string, amount decimal.Decimal, ts int64) error {
	for _, v := range r.vendors {
		if v.ID == id {
			v.TotalSales = v.TotalSales.Add(amount)
			v.DailySales = v.DailySales.Add(amount)
			v.SalesCount++
			v.LastSaleDate = &ts
			v.LastUpdate = ts
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubVendorRepo) ResetCounters(_ context.Context, ts int64) error {
	for _, v := range r.vendors {
		v.TotalSales = decimal.Zero
		v.DailySales = decimal.Zero
		v.SalesCount = 0
		v.AverageTicket = decimal.Zero
		v.LastSaleDate = nil
		v.LastUpdate = ts
	}
	return nil
}

func (r *stubVendorRepo) Count(_ context.Context) (int64, error) { return int64(len(r.vendors)), nil }

var _ repository.VendorRepository = (*stubVendorRepo)(nil)

// ── stock ────────────────────────────────────────────────────────────────────

type stubStockRepo struct {
	stocks    []*model.Stock
	movements []model.StockMovement

	listErr error
	saveErr map[string]error // per stock id
}

func (r *stubStockRepo) List(_ context.Context) ([]model.Stock, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]model.Stock, 0, len(r.stocks))
	for _, s := range r.stocks {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubStockRepo) FindByID(_ context.Context, id string) (*model.Stock, error) {
	for _, s := range r.stocks {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubStockRepo) Save(_ context.Context, in *model.Stock) error {
	if err := r.saveErr[in.ID]; err != nil {
		return err
	}
	for _, s := range r.stocks {
		if s.ID == in.ID {
			s.ProductName = in.ProductName
			s.PhysicalStock = in.PhysicalStock
			s.MinStock = in.MinStock
			s.LastUpdate = in.LastUpdate
			return nil
		}
	}
	cp := *in
	r.stocks = append(r.stocks, &cp)
	return nil
}

func (r *stubStockRepo) AdjustPhysical(_ context.Context, id string, delta int, ts int64) error {
	for _, s := range r.stocks {
		if s.ID == id {
			s.PhysicalStock += delta
			s.LastUpdate = ts
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubStockRepo) Count(_ context.Context) (int64, error) { return int64(len(r.stocks)), nil }

func (r *stubStockRepo) CreateMovement(_ context.Context, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubStockRepo) ListMovements(_ context.Context, filter repository.StockMovementFilter) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.StockID != "" && m.StockID != filter.StockID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *stubStockRepo) CountMovementsByType(_ context.Context, movementType string) (int64, error) {
	var n int64
	for _, m := range r.movements {
		if m.Type == movementType {
			n++
		}
	}
	return n, nil
}

func (r *stubStockRepo) DeleteMovementsByType(_ context.Context, movementType string) error {
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.Type != movementType {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

var _ repository.StockRepository = (*stubStockRepo)(nil)

// ── analytics ────────────────────────────────────────────────────────────────

type stubAnalyticsRepo struct {
	vendorRows  int64
	productRows int64
	recorded    int
	recordErr   error
}

func (r *stubAnalyticsRepo) RecordSale(_ context.Context, _, _, _ string, _ decimal.Decimal, _ int) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.recorded++
	return nil
}

func (r *stubAnalyticsRepo) CountVendor(_ context.Context) (int64, error)  { return r.vendorRows, nil }
func (r *stubAnalyticsRepo) CountProduct(_ context.Context) (int64, error) { return r.productRows, nil }

func (r *stubAnalyticsRepo) ClearVendor(_ context.Context) error {
	r.vendorRows = 0
	return nil
}

func (r *stubAnalyticsRepo) ClearProduct(_ context.Context) error {
	r.productRows = 0
	return nil
}

var _ repository.AnalyticsRepository = (*stubAnalyticsRepo)(nil)

// ── cache ────────────────────────────────────────────────────────────────────

type stubCacheRepo struct {
	rows       int64
	clearedAll bool
}

func (r *stubCacheRepo) Set(_ context.Context, _ *model.CacheEntry) error { r.rows++; return nil }

func (r *stubCacheRepo) Get(_ context.Context, _ string) (*model.CacheEntry, error) {
	return nil, errors.New("not found")
}

func (r *stubCacheRepo) Count(_ context.Context) (int64, error) { return r.rows, nil }

func (r *stubCacheRepo) ClearAll(_ context.Context) error {
	r.clearedAll = true
	r.rows = 0
	return nil
}

var _ repository.CacheRepository = (*stubCacheRepo)(nil)

// ── history ──────────────────────────────────────────────────────────────────

type stubHistoryRepo struct {
	entries   []model.RAZHistoryEntry
	createErr error
	listErr   error
}

func (r *stubHistoryRepo) Create(_ context.Context, entry *model.RAZHistoryEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubHistoryRepo) List(_ context.Context) ([]model.RAZHistoryEntry, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.entries, nil
}

func (r *stubHistoryRepo) FindByID(_ context.Context, id string) (*model.RAZHistoryEntry, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return &r.entries[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubHistoryRepo) Delete(_ context.Context, id string) error {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubHistoryRepo) DeleteOldest(_ context.Context, keepLast int) (int64, error) {
	if len(r.entries) <= keepLast {
		return 0, nil
	}
	deleted := int64(len(r.entries) - keepLast)
	r.entries = r.entries[:keepLast]
	return deleted, nil
}

func (r *stubHistoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

var _ repository.HistoryRepository = (*stubHistoryRepo)(nil)

// ── archive ──────────────────────────────────────────────────────────────────

type stubArchiveRepo struct {
	entries []*model.CommissionArchive
	saveErr error
}

func (r *stubArchiveRepo) Save(_ context.Context, entry *model.CommissionArchive) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubArchiveRepo) List(_ context.Context) ([]model.CommissionArchive, error) {
	out := make([]model.CommissionArchive, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubArchiveRepo) FindByID(_ context.Context, id string) (*model.CommissionArchive, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubArchiveRepo) Delete(_ context.Context, id string) error {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubArchiveRepo) ClearAll(_ context.Context) error {
	r.entries = nil
	return nil
}

func (r *stubArchiveRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

var _ repository.ArchiveRepository = (*stubArchiveRepo)(nil)

// ── fast tier ────────────────────────────────────────────────────────────────

type stubTier struct {
	data       map[string]string
	failDelete map[string]bool
}

func newStubTier() *stubTier {
	return &stubTier{data: make(map[string]string), failDelete: make(map[string]bool)}
}

func (t *stubTier) TryGet(_ context.Context, key string) (string, bool) {
	raw, ok := t.data[key]
	return raw, ok
}

func (t *stubTier) TrySet(_ context.Context, key, raw string) bool {
	t.data[key] = raw
	return true
}

func (t *stubTier) TryDelete(_ context.Context, key string) bool {
	if t.failDelete[key] {
		return false
	}
	delete(t.data, key)
	return true
}

var _ store.Tier = (*stubTier)(nil)
