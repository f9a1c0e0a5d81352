package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes on existing installations).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests
// against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Setting{},
		&model.Session{},
		&model.Vendor{},
		&model.Sale{},
		&model.CartItem{},
		&model.Stock{},
		&model.StockMovement{},
		&model.VendorAnalytics{},
		&model.ProductAnalytics{},
		&model.CacheEntry{},
		&model.RAZHistoryEntry{},
		&model.CommissionArchive{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements AutoMigrate cannot fully
// handle on its own. Each statement uses IF NOT EXISTS semantics so re-running
// on an already-patched DB is safe. Skipped entirely on non-Postgres drivers
// (in-memory SQLite test databases).
func applySchemaPatches(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	patches := []string{
		// RAZ deletes by movement type; keep that scan off the main index.
		`CREATE INDEX IF NOT EXISTS idx_stock_movements_sale
		     ON stock_movements (created_at)
		     WHERE type = 'sale'`,
		// History listing is always reverse-chronological.
		`CREATE INDEX IF NOT EXISTS idx_raz_history_date_desc
		     ON raz_history (date DESC)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
