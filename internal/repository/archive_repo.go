package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

// ArchiveRepository persists commission archive snapshots. The archive table
// is an optional add-on schema — older installations may not have it — so
// every operation guards on table existence and degrades to a no-op or empty
// result with a logged warning instead of throwing.
type ArchiveRepository interface {
	Save(ctx context.Context, entry *model.CommissionArchive) error
	List(ctx context.Context) ([]model.CommissionArchive, error)
	FindByID(ctx context.Context, id string) (*model.CommissionArchive, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type archiveRepo struct{ db *gorm.DB }

func NewArchiveRepository(db *gorm.DB) ArchiveRepository { return &archiveRepo{db: db} }

func (r *archiveRepo) hasTable() bool {
	if r.db.Migrator().HasTable(&model.CommissionArchive{}) {
		return true
	}
	log.Warn().Msg("archive: vendor_commission_archives table missing, operation skipped")
	return false
}

// Save upserts by id. Archive entries are append-only in practice — the upsert
// only matters when a retried save races its own first attempt.
func (r *archiveRepo) Save(ctx context.Context, entry *model.CommissionArchive) error {
	if !r.hasTable() {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tables", "totals", "archived_at"}),
	}).Create(entry).Error
}

func (r *archiveRepo) List(ctx context.Context) ([]model.CommissionArchive, error) {
	if !r.hasTable() {
		return []model.CommissionArchive{}, nil
	}
	var entries []model.CommissionArchive
	err := r.db.WithContext(ctx).Order("archived_at DESC").Find(&entries).Error
	return entries, err
}

func (r *archiveRepo) FindByID(ctx context.Context, id string) (*model.CommissionArchive, error) {
	if !r.hasTable() {
		return nil, gorm.ErrRecordNotFound
	}
	var entry model.CommissionArchive
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *archiveRepo) Delete(ctx context.Context, id string) error {
	if !r.hasTable() {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&model.CommissionArchive{}, "id = ?", id).Error
}

func (r *archiveRepo) ClearAll(ctx context.Context) error {
	if !r.hasTable() {
		return nil
	}
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.CommissionArchive{}).Error
}

func (r *archiveRepo) Count(ctx context.Context) (int64, error) {
	if !r.hasTable() {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CommissionArchive{}).Count(&n).Error
	return n, err
}
