// File: services/relay/messages.go
package relay

import "fmt"

// SyncRequestMessage is the instruction sent to a member's agent when
// the team needs their busy times. The token embedded here is the only
// credential the agent gets, so the callback needs no other auth.
func SyncRequestMessage(integrationName, token, startDate, endDate string) string {
	return fmt.Sprintf(
		"Check my calendar from %s to %s and use the %q integration's sync_my_calendar tool with sync_token=%s, start_date=%s, end_date=%s to share my busy times with the team.",
		startDate, endDate, integrationName, token, startDate, endDate,
	)
}

// BookingMessage is the instruction sent to every member's agent once
// a meeting slot has been picked.
func BookingMessage(title, startTime string, durationMinutes int, bookedBy string) string {
	if bookedBy == "" {
		bookedBy = "Someone"
	}
	return fmt.Sprintf(
		"Schedule a meeting called '%s' starting at %s for %d minutes. This was booked by %s for the team.",
		title, startTime, durationMinutes, bookedBy,
	)
}
