package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

// StockMovementFilter narrows movement listings.
type StockMovementFilter struct {
	StockID string
	Type    string
	Limit   int
}

type StockRepository interface {
	List(ctx context.Context) ([]model.Stock, error)
	FindByID(ctx context.Context, id string) (*model.Stock, error)
	Save(ctx context.Context, s *model.Stock) error
	AdjustPhysical(ctx context.Context, id string, delta int, ts int64) error
	Count(ctx context.Context) (int64, error)

	CreateMovement(ctx context.Context, m *model.StockMovement) error
	ListMovements(ctx context.Context, filter StockMovementFilter) ([]model.StockMovement, error)
	CountMovementsByType(ctx context.Context, movementType string) (int64, error)
	// DeleteMovementsByType removes every movement of one type — RAZ uses it
	// to wipe "sale" movements while leaving replenishments untouched.
	DeleteMovementsByType(ctx context.Context, movementType string) error
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) List(ctx context.Context) ([]model.Stock, error) {
	var records []model.Stock
	err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error
	return records, err
}

func (r *stockRepo) FindByID(ctx context.Context, id string) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *stockRepo) Save(ctx context.Context, s *model.Stock) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_name", "physical_stock", "min_stock", "last_update"}),
	}).Create(s).Error
}

func (r *stockRepo) AdjustPhysical(ctx context.Context, id string, delta int, ts int64) error {
	return r.db.WithContext(ctx).Model(&model.Stock{}).Where("id = ?", id).
		Updates(map[string]any{
			"physical_stock": gorm.Expr("physical_stock + ?", delta),
			"last_update":    ts,
		}).Error
}

func (r *stockRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Stock{}).Count(&n).Error
	return n, err
}

func (r *stockRepo) CreateMovement(ctx context.Context, m *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *stockRepo) ListMovements(ctx context.Context, filter StockMovementFilter) ([]model.StockMovement, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if filter.StockID != "" {
		q = q.Where("stock_id = ?", filter.StockID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var movements []model.StockMovement
	err := q.Order("created_at DESC").Limit(limit).Find(&movements).Error
	return movements, err
}

func (r *stockRepo) CountMovementsByType(ctx context.Context, movementType string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Where("type = ?", movementType).Count(&n).Error
	return n, err
}

func (r *stockRepo) DeleteMovementsByType(ctx context.Context, movementType string) error {
	return r.db.WithContext(ctx).Where("type = ?", movementType).Delete(&model.StockMovement{}).Error
}
