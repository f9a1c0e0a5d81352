package model

// Setting is one logical key of the dual-tier key-value store, as persisted in
// the structured tier: one row per key, Value holding the JSON payload and
// LastUpdate the envelope timestamp (epoch milliseconds). The fast tier stores
// the same logical key as a serialized envelope string.
type Setting struct {
	Key        string `gorm:"primaryKey" json:"key"`
	Value      string `gorm:"type:text" json:"value"`
	LastUpdate int64  `gorm:"not null" json:"lastUpdate"`
	Version    string `gorm:"type:varchar(10);not null;default:'1.0'" json:"version"`
}

func (Setting) TableName() string { return "settings" }
