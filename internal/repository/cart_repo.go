package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

type CartRepository interface {
	Add(ctx context.Context, item *model.CartItem) error
	List(ctx context.Context) ([]model.CartItem, error)
	Count(ctx context.Context) (int64, error)
	ClearAll(ctx context.Context) error
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepo{db: db} }

func (r *cartRepo) Add(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) List(ctx context.Context) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).Order("added_at ASC").Find(&items).Error
	return items, err
}

func (r *cartRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CartItem{}).Count(&n).Error
	return n, err
}

func (r *cartRepo) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.CartItem{}).Error
}
