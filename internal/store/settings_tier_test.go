package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/model"
)

func newSettingsDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Setting{}))
	return db
}

func TestSettingsTierRoundTrip(t *testing.T) {
	tier := NewSettingsTier(newSettingsDB(t))
	ctx := context.Background()
	in := NewEnvelope(json.RawMessage(`{"cart":["matelas"]}`), 1724800000000)

	require.True(t, tier.TrySet(ctx, "currentCart", in.Encode()))

	raw, ok := tier.TryGet(ctx, "currentCart")
	require.True(t, ok)
	out := ParseEnvelope(raw)
	assert.Equal(t, in.Timestamp, out.Timestamp)
	assert.JSONEq(t, string(in.Data), string(out.Data))
}

func TestSettingsTierUpsertsSameKey(t *testing.T) {
	db := newSettingsDB(t)
	tier := NewSettingsTier(db)
	ctx := context.Background()

	require.True(t, tier.TrySet(ctx, "k", NewEnvelope(json.RawMessage(`1`), 100).Encode()))
	require.True(t, tier.TrySet(ctx, "k", NewEnvelope(json.RawMessage(`2`), 200).Encode()))

	var n int64
	require.NoError(t, db.Model(&model.Setting{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	raw, ok := tier.TryGet(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, int64(200), ParseEnvelope(raw).Timestamp)
}

func TestSettingsTierLegacyRowGetsDefaultVersion(t *testing.T) {
	db := newSettingsDB(t)
	// Row written before the envelope era: no version, bare value.
	require.NoError(t, db.Create(&model.Setting{Key: "old", Value: `"v"`, LastUpdate: 0, Version: ""}).Error)
	tier := NewSettingsTier(db)

	raw, ok := tier.TryGet(context.Background(), "old")

	require.True(t, ok)
	env := ParseEnvelope(raw)
	assert.Equal(t, EnvelopeVersion, env.Version)
	assert.Equal(t, int64(0), env.Timestamp)
}

func TestSettingsTierAbsentKey(t *testing.T) {
	tier := NewSettingsTier(newSettingsDB(t))

	_, ok := tier.TryGet(context.Background(), "missing")

	assert.False(t, ok)
}

func TestSettingsTierDelete(t *testing.T) {
	tier := NewSettingsTier(newSettingsDB(t))
	ctx := context.Background()
	require.True(t, tier.TrySet(ctx, "k", NewEnvelope(json.RawMessage(`1`), 1).Encode()))

	assert.True(t, tier.TryDelete(ctx, "k"))
	_, ok := tier.TryGet(ctx, "k")
	assert.False(t, ok)

	// Deleting an absent key still reports success.
	assert.True(t, tier.TryDelete(ctx, "k"))
}
