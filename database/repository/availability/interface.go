// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"huddle/models"
)

// AvailabilityRepository stores per-member busy-time reports keyed by
// member and date range. A report replaces any earlier report for the
// same key, so polling always sees the freshest sync.
type AvailabilityRepository interface {
	Upsert(ctx context.Context, report *models.AvailabilityReport) error
	// GetReport returns one member's stored report for the exact range,
	// or nil when they have not synced it.
	GetReport(ctx context.Context, memberID, dateStart, dateEnd string) (*models.AvailabilityReport, error)
	// GetTeamReports returns the stored report of every listed member
	// for the range, keyed by member ID. Members who have not synced
	// are simply absent. One call, one query: the poll loop relies on
	// this being a single snapshot read.
	GetTeamReports(ctx context.Context, memberIDs []string, dateStart, dateEnd string) (map[string]models.AvailabilityReport, error)
}
