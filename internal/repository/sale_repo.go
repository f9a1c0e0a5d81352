package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id string) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	Cancel(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ClearAll(ctx context.Context) error
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Cancel(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).
		Update("canceled", true).Error
}

func (r *saleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Count(&n).Error
	return n, err
}

func (r *saleRepo) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Sale{}).Error
}
