package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *model.RAZHistoryEntry) error
	List(ctx context.Context) ([]model.RAZHistoryEntry, error)
	FindByID(ctx context.Context, id string) (*model.RAZHistoryEntry, error)
	Delete(ctx context.Context, id string) error
	// DeleteOldest removes entries beyond the keepLast most recent ones,
	// returning how many were deleted.
	DeleteOldest(ctx context.Context, keepLast int) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) HistoryRepository { return &historyRepo{db: db} }

func (r *historyRepo) Create(ctx context.Context, entry *model.RAZHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepo) List(ctx context.Context) ([]model.RAZHistoryEntry, error) {
	var entries []model.RAZHistoryEntry
	err := r.db.WithContext(ctx).Order("date DESC").Find(&entries).Error
	return entries, err
}

func (r *historyRepo) FindByID(ctx context.Context, id string) (*model.RAZHistoryEntry, error) {
	var entry model.RAZHistoryEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *historyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.RAZHistoryEntry{}, "id = ?", id).Error
}

func (r *historyRepo) DeleteOldest(ctx context.Context, keepLast int) (int64, error) {
	if keepLast < 0 {
		keepLast = 0
	}
	var keepIDs []string
	err := r.db.WithContext(ctx).Model(&model.RAZHistoryEntry{}).
		Order("date DESC").Limit(keepLast).Pluck("id", &keepIDs).Error
	if err != nil {
		return 0, err
	}

	q := r.db.WithContext(ctx)
	if len(keepIDs) > 0 {
		q = q.Where("id NOT IN ?", keepIDs)
	} else {
		q = q.Where("1 = 1")
	}
	res := q.Delete(&model.RAZHistoryEntry{})
	return res.RowsAffected, res.Error
}

func (r *historyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RAZHistoryEntry{}).Count(&n).Error
	return n, err
}
