package dto

import "encoding/json"

// PutSettingRequest writes one logical key of the dual-tier store.
type PutSettingRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}

// SettingResponse returns the resolved value of one logical key.
type SettingResponse struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
