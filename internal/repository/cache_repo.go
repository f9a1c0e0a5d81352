package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

type CacheRepository interface {
	Set(ctx context.Context, entry *model.CacheEntry) error
	Get(ctx context.Context, key string) (*model.CacheEntry, error)
	Count(ctx context.Context) (int64, error)
	ClearAll(ctx context.Context) error
}

type cacheRepo struct{ db *gorm.DB }

func NewCacheRepository(db *gorm.DB) CacheRepository { return &cacheRepo{db: db} }

func (r *cacheRepo) Set(ctx context.Context, entry *model.CacheEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(entry).Error
}

func (r *cacheRepo) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	var entry model.CacheEntry
	err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	return &entry, err
}

func (r *cacheRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CacheEntry{}).Count(&n).Error
	return n, err
}

func (r *cacheRepo) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.CacheEntry{}).Error
}
