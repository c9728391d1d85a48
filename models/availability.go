package models

import "time"

// BusyInterval is a single busy block on a member's calendar.
// Start and End are datetime strings as reported by the member's
// relay agent (e.g., "2026-03-02T09:30:00"); they are parsed and
// validated when slots are computed, not at ingestion.
type BusyInterval struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// AvailabilityReport holds one member's busy times for a date range.
// A newer sync for the same member and range replaces the older one.
type AvailabilityReport struct {
	ID        string         `bson:"id" json:"id"`
	MemberID  string         `bson:"memberId" json:"memberId"`
	DateStart string         `bson:"dateStart" json:"dateStart"` // "2026-03-02"
	DateEnd   string         `bson:"dateEnd" json:"dateEnd"`     // "2026-03-06"
	BusyTimes []BusyInterval `bson:"busyTimes" json:"busyTimes"`
	SyncedAt  time.Time      `bson:"syncedAt" json:"syncedAt"`
}

// FreeSlot is a window where every reporting member is free.
type FreeSlot struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	Display         string `json:"display"` // e.g., "Mon Mar 02 2:00 PM - Mon Mar 02 4:00 PM"
	DurationMinutes int    `json:"durationMinutes"`
}

// TeamSlotsResult is the outcome of a team availability run.
// Success is false when no member data arrived in time; a partial
// set of reports still yields Success true with Missing populated.
type TeamSlotsResult struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	Slots    []FreeSlot `json:"slots"`
	Reported []string   `json:"reported"`
	Missing  []string   `json:"missing"`
}

// FindSlotsRequest defines the payload for a team availability run.
// DurationMinutes defaults to 30 when omitted.
type FindSlotsRequest struct {
	DurationMinutes int    `json:"durationMinutes"`
	StartDate       string `json:"startDate" binding:"required"` // "2026-03-02"
	EndDate         string `json:"endDate" binding:"required"`   // "2026-03-06"
}

// SyncReportRequest is the callback payload a relay agent posts after
// reading its member's calendar. The sync token is the sole proof of
// identity: it was minted for one member, range, and run. ICS may be
// supplied instead of BusyTimes to sync from a raw calendar export.
// Agents echo the requested date range, but the range the token was
// minted for is authoritative.
type SyncReportRequest struct {
	SyncToken string         `json:"syncToken" binding:"required"`
	StartDate string         `json:"startDate,omitempty"`
	EndDate   string         `json:"endDate,omitempty"`
	BusyTimes []BusyInterval `json:"busyTimes"`
	ICS       string         `json:"ics,omitempty"`
}

// BookMeetingRequest defines the payload for broadcasting a booking.
// DurationMinutes defaults to 30 when omitted.
type BookMeetingRequest struct {
	Title           string `json:"title" binding:"required"`
	StartTime       string `json:"startTime" binding:"required"` // "2026-03-02T14:00:00"
	DurationMinutes int    `json:"durationMinutes"`
}
