package models

import "time"

// Dispatch outcome states for a single member in a relay batch.
const (
	DispatchSent    = "sent"
	DispatchSkipped = "skipped"
	DispatchFailed  = "failed"
)

// DispatchOutcome records what happened to one member during a relay
// fan-out: sent, skipped (no relay key), or failed (delivery error).
type DispatchOutcome struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

// SyncTokenData is the one-time credential minted per member per
// availability run. It is stored server-side keyed by the opaque
// token string and consumed atomically on first use.
type SyncTokenData struct {
	Token     string    `json:"token"`
	MemberID  string    `json:"memberId"`
	TeamID    string    `json:"teamId"`
	DateStart string    `json:"dateStart"`
	DateEnd   string    `json:"dateEnd"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// BookingBroadcastResult summarizes a booking notification fan-out.
// Success means at least one member received the notification.
type BookingBroadcastResult struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	SentCount int               `json:"sentCount"`
	Total     int               `json:"total"`
	Details   []DispatchOutcome `json:"details"`
}
