package model

import (
	"github.com/google/uuid"
)

// Session represents one sales event (a multi-day fair or in-store session).
// Statut: "ouverte" | "fermee"
// A session is created on open and mutated only once, by close.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventName *string   `json:"eventName,omitempty"`
	// EventStart / EventEnd are epoch milliseconds, inclusive day bounds of the event.
	EventStart *int64 `json:"eventStart,omitempty"`
	EventEnd   *int64 `json:"eventEnd,omitempty"`
	OpenedAt   int64  `gorm:"not null" json:"openedAt"`
	ClosedAt   *int64 `json:"closedAt,omitempty"`
	Statut     string `gorm:"type:varchar(20);not null;default:'ouverte'" json:"statut"`
}

func (Session) TableName() string { return "sessions" }
