package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

type VendorRepository interface {
	Upsert(ctx context.Context, v *model.Vendor) error
	FindByID(ctx context.Context, id string) (*model.Vendor, error)
	List(ctx context.Context) ([]model.Vendor, error)
	// ApplySale folds one sale into the vendor's running counters.
	ApplySale(ctx context.Context, id string, amount decimal.Decimal, ts int64) error
	// ResetCounters zeroes every vendor's sales counters without touching
	// identity rows. Used by RAZ.
	ResetCounters(ctx context.Context, ts int64) error
	Count(ctx context.Context) (int64, error)
}

type vendorRepo struct{ db *gorm.DB }

func NewVendorRepository(db *gorm.DB) VendorRepository { return &vendorRepo{db: db} }

func (r *vendorRepo) Upsert(ctx context.Context, v *model.Vendor) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "active", "last_update"}),
	}).Create(v).Error
}

func (r *vendorRepo) FindByID(ctx context.Context, id string) (*model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vendorRepo) List(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepo) ApplySale(ctx context.Context, id string, amount decimal.Decimal, ts int64) error {
	v, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	v.TotalSales = v.TotalSales.Add(amount)
	v.DailySales = v.DailySales.Add(amount)
	v.SalesCount++
	v.AverageTicket = v.TotalSales.Div(decimal.NewFromInt(int64(v.SalesCount))).Round(2)
	v.LastSaleDate = &ts
	v.LastUpdate = ts
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vendorRepo) ResetCounters(ctx context.Context, ts int64) error {
	return r.db.WithContext(ctx).Model(&model.Vendor{}).Where("1 = 1").
		Updates(map[string]any{
			"total_sales":    decimal.Zero,
			"daily_sales":    decimal.Zero,
			"sales_count":    0,
			"average_ticket": decimal.Zero,
			"last_sale_date": nil,
			"last_update":    ts,
		}).Error
}

func (r *vendorRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Vendor{}).Count(&n).Error
	return n, err
}
