package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

type AnalyticsRepository interface {
	RecordSale(ctx context.Context, vendorID, day, productName string, amount decimal.Decimal, quantity int) error
	CountVendor(ctx context.Context) (int64, error)
	CountProduct(ctx context.Context) (int64, error)
	ClearVendor(ctx context.Context) error
	ClearProduct(ctx context.Context) error
}

type analyticsRepo struct{ db *gorm.DB }

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository { return &analyticsRepo{db: db} }

// RecordSale folds one sale line into both aggregate collections. Aggregates
// are additive scratch data rebuilt each session, so plain read-modify-write
// per row is enough.
func (r *analyticsRepo) RecordSale(ctx context.Context, vendorID, day, productName string, amount decimal.Decimal, quantity int) error {
	var va model.VendorAnalytics
	err := r.db.WithContext(ctx).Where("vendor_id = ? AND day = ?", vendorID, day).First(&va).Error
	switch err {
	case nil:
		va.Revenue = va.Revenue.Add(amount)
		va.SalesCount++
		if err := r.db.WithContext(ctx).Save(&va).Error; err != nil {
			return err
		}
	case gorm.ErrRecordNotFound:
		va = model.VendorAnalytics{ID: uuid.New(), VendorID: vendorID, Day: day, Revenue: amount, SalesCount: 1}
		if err := r.db.WithContext(ctx).Create(&va).Error; err != nil {
			return err
		}
	default:
		return err
	}

	if productName == "" {
		return nil
	}
	var pa model.ProductAnalytics
	err = r.db.WithContext(ctx).Where("product_name = ?", productName).First(&pa).Error
	switch err {
	case nil:
		pa.QuantitySold += quantity
		pa.Revenue = pa.Revenue.Add(amount)
		return r.db.WithContext(ctx).Save(&pa).Error
	case gorm.ErrRecordNotFound:
		pa = model.ProductAnalytics{ID: uuid.New(), ProductName: productName, QuantitySold: quantity, Revenue: amount}
		return r.db.WithContext(ctx).Create(&pa).Error
	default:
		return err
	}
}

func (r *analyticsRepo) CountVendor(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VendorAnalytics{}).Count(&n).Error
	return n, err
}

func (r *analyticsRepo) CountProduct(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductAnalytics{}).Count(&n).Error
	return n, err
}

func (r *analyticsRepo) ClearVendor(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.VendorAnalytics{}).Error
}

func (r *analyticsRepo) ClearProduct(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.ProductAnalytics{}).Error
}
