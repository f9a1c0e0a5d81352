package dto

// OpenSessionRequest opens a new sales event.
// Dates are epoch milliseconds, inclusive day bounds.
type OpenSessionRequest struct {
	EventName  string `json:"eventName" validate:"required"`
	EventStart *int64 `json:"eventStart"`
	EventEnd   *int64 `json:"eventEnd" validate:"omitempty,gtefield=EventStart"`
}

// SessionResponse mirrors the session row for the UI.
type SessionResponse struct {
	ID         string  `json:"id"`
	EventName  *string `json:"eventName,omitempty"`
	EventStart *int64  `json:"eventStart,omitempty"`
	EventEnd   *int64  `json:"eventEnd,omitempty"`
	OpenedAt   int64   `json:"openedAt"`
	ClosedAt   *int64  `json:"closedAt,omitempty"`
	Statut     string  `json:"statut"`
}
