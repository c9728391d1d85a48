// File: database/repository/availability/memory.go
package availabilityRepo

import (
	"context"
	"sync"
	"time"

	"huddle/models"

	"github.com/google/uuid"
)

type reportKey struct {
	memberID  string
	dateStart string
	dateEnd   string
}

// MemoryAvailabilityRepo is an in-process AvailabilityRepository used
// in memory mode and in tests.
type MemoryAvailabilityRepo struct {
	mu      sync.RWMutex
	reports map[reportKey]models.AvailabilityReport

	// Reads counts snapshot queries, letting tests assert that the
	// poll loop reads once per iteration.
	Reads int
}

// NewMemoryAvailabilityRepo creates an empty in-memory availability repository.
func NewMemoryAvailabilityRepo() *MemoryAvailabilityRepo {
	return &MemoryAvailabilityRepo{reports: make(map[reportKey]models.AvailabilityReport)}
}

func (r *MemoryAvailabilityRepo) Upsert(_ context.Context, report *models.AvailabilityReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	report.SyncedAt = time.Now()
	key := reportKey{report.MemberID, report.DateStart, report.DateEnd}
	r.reports[key] = *report
	return nil
}

func (r *MemoryAvailabilityRepo) GetReport(_ context.Context, memberID, dateStart, dateEnd string) (*models.AvailabilityReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[reportKey{memberID, dateStart, dateEnd}]
	if !ok {
		return nil, nil
	}
	out := report
	return &out, nil
}

func (r *MemoryAvailabilityRepo) GetTeamReports(_ context.Context, memberIDs []string, dateStart, dateEnd string) (map[string]models.AvailabilityReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++

	out := make(map[string]models.AvailabilityReport)
	for _, id := range memberIDs {
		if report, ok := r.reports[reportKey{id, dateStart, dateEnd}]; ok {
			out[id] = report
		}
	}
	return out, nil
}
