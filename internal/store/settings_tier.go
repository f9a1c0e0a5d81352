package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

// SettingsTier is the structured tier: one settings row per logical key, the
// envelope metadata spread over columns (Value = data, LastUpdate = timestamp).
// It is the durable source of truth and wins reconciliation ties.
type SettingsTier struct {
	db *gorm.DB
}

func NewSettingsTier(db *gorm.DB) *SettingsTier { return &SettingsTier{db: db} }

func (t *SettingsTier) TryGet(ctx context.Context, key string) (string, bool) {
	var row model.Setting
	err := t.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("key", key).Err(err).Msg("settings tier: read failed, treating as absent")
		}
		return "", false
	}
	version := row.Version
	if version == "" {
		version = EnvelopeVersion
	}
	return Envelope{
		Version:   version,
		Timestamp: row.LastUpdate,
		Data:      []byte(row.Value),
	}.Encode(), true
}

func (t *SettingsTier) TrySet(ctx context.Context, key string, raw string) bool {
	env := ParseEnvelope(raw)
	row := model.Setting{
		Key:        key,
		Value:      string(env.Data),
		LastUpdate: env.Timestamp,
		Version:    env.Version,
	}
	err := t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "last_update", "version"}),
	}).Create(&row).Error
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("settings tier: write failed")
		return false
	}
	return true
}

func (t *SettingsTier) TryDelete(ctx context.Context, key string) bool {
	if err := t.db.WithContext(ctx).Delete(&model.Setting{}, "key = ?", key).Error; err != nil {
		log.Warn().Str("key", key).Err(err).Msg("settings tier: delete failed")
		return false
	}
	return true
}
