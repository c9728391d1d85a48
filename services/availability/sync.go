// File: services/availability/sync.go
package availability

import (
	"context"
	"fmt"

	"huddle/models"
	"huddle/services/calendar"
	"huddle/utils"

	"go.uber.org/zap"
)

// SyncReport ingests a relay agent's calendar callback. The one-time
// token is the sole proof of identity: it was minted for one member,
// team, and date range, and it is consumed atomically before anything
// else happens, so a replayed callback can never overwrite data. The
// stored report is keyed by the token's binding, not by anything the
// caller claims.
func (s *DefaultAvailabilityService) SyncReport(ctx context.Context, req models.SyncReportRequest) (*models.AvailabilityReport, error) {
	data, err := s.Tokens.Consume(ctx, req.SyncToken)
	if err != nil {
		return nil, fmt.Errorf("failed to consume sync token: %w", err)
	}
	if data == nil {
		return nil, &InvalidTokenError{}
	}

	busy := req.BusyTimes
	if len(busy) == 0 && req.ICS != "" {
		parsed, err := calendar.BusyTimesFromICS(req.ICS)
		if err != nil {
			return nil, &InvalidPayloadError{Reason: fmt.Sprintf("bad ICS export: %v", err)}
		}
		busy = parsed
	}
	if busy == nil {
		// An empty report is a valid report: the member is free.
		busy = []models.BusyInterval{}
	}

	report := &models.AvailabilityReport{
		MemberID:  data.MemberID,
		DateStart: data.DateStart,
		DateEnd:   data.DateEnd,
		BusyTimes: busy,
	}
	if err := s.Reports.Upsert(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store availability report: %w", err)
	}

	utils.GetLogger().Info("availability report stored",
		zap.String("memberId", data.MemberID),
		zap.String("teamId", data.TeamID),
		zap.Int("busyCount", len(busy)))
	return report, nil
}
