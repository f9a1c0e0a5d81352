package store

import (
	"encoding/json"
)

// EnvelopeVersion is advisory for now — no format-breaking migration exists.
const EnvelopeVersion = "1.0"

// Envelope wraps every persisted value with its write metadata.
// Timestamp is epoch milliseconds of the wall-clock write time; the envelope
// with the newer timestamp always wins reconciliation.
type Envelope struct {
	Version   string          `json:"version"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewEnvelope wraps data with the current version and the given timestamp.
func NewEnvelope(data json.RawMessage, ts int64) Envelope {
	return Envelope{Version: EnvelopeVersion, Timestamp: ts, Data: data}
}

// Encode serializes the envelope for tier storage.
func (e Envelope) Encode() string {
	raw, err := json.Marshal(e)
	if err != nil {
		// Envelope fields are always marshalable; Data is already valid JSON.
		return ""
	}
	return string(raw)
}

// envelopeProbe distinguishes a real envelope from a bare legacy value:
// legacy keys were written as naked JSON, without version/timestamp.
type envelopeProbe struct {
	Version   *string         `json:"version"`
	Timestamp *int64          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// ParseEnvelope normalizes a raw tier value into envelope shape. Bare or
// legacy values become {data: value, timestamp: 0, version: "1.0"} so that any
// properly enveloped copy of the same key wins reconciliation against them.
func ParseEnvelope(raw string) Envelope {
	legacy := Envelope{Version: EnvelopeVersion, Timestamp: 0, Data: json.RawMessage(raw)}

	if !json.Valid([]byte(raw)) {
		// Not JSON at all — wrap it as an opaque legacy string payload.
		quoted, qerr := json.Marshal(raw)
		if qerr == nil {
			legacy.Data = quoted
		}
		return legacy
	}

	var probe envelopeProbe
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		// Valid JSON but not an object: a bare legacy array, number or
		// string. Its shape must survive — several reserved keys hold lists.
		return legacy
	}
	if probe.Version == nil || probe.Timestamp == nil || probe.Data == nil {
		return legacy
	}
	return Envelope{Version: *probe.Version, Timestamp: *probe.Timestamp, Data: probe.Data}
}
