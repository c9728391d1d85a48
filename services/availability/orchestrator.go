// File: services/availability/orchestrator.go
package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"huddle/models"
	"huddle/services/calendar"
	"huddle/services/relay"
	"huddle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxSlotsInMessage bounds how many windows the summary message lists.
const maxSlotsInMessage = 6

// FindTeamSlots drives a coordination run end to end. Sync requests
// go out to every member except the requester, the poll loop waits
// for their reports up to the deadline, and slots are computed from
// whatever arrived. Partial data degrades the answer, it never aborts
// the run.
func (s *DefaultAvailabilityService) FindTeamSlots(ctx context.Context, teamID, requesterID string, req models.FindSlotsRequest) (*models.TeamSlotsResult, error) {
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 30
	}
	if _, err := calendar.ParseDate(req.StartDate); err != nil {
		return nil, &InvalidRangeError{Reason: fmt.Sprintf("bad start date %q", req.StartDate)}
	}
	if _, err := calendar.ParseDate(req.EndDate); err != nil {
		return nil, &InvalidRangeError{Reason: fmt.Sprintf("bad end date %q", req.EndDate)}
	}

	team, err := s.Teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return nil, &TeamNotFoundError{TeamID: teamID}
	}
	if ok, err := s.Teams.IsMember(ctx, teamID, requesterID); err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	} else if !ok {
		return nil, &NotAMemberError{TeamID: teamID, MemberID: requesterID}
	}

	memberIDs, err := s.Teams.GetMemberIDs(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	members, err := s.Members.GetByIDs(memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	if len(members) == 0 {
		return &models.TeamSlotsResult{Success: false, Message: "No team members found.", Slots: []models.FreeSlot{}}, nil
	}

	targets, expected := s.buildSyncTargets(ctx, members, requesterID, teamID, req)
	if len(targets) > 0 {
		s.Relay.DispatchBatch(ctx, targets)
	}

	snapshot := s.waitForReports(ctx, memberIDs, req.StartDate, req.EndDate, expected)
	return s.buildResult(members, snapshot, req), nil
}

// buildSyncTargets mints a one-time token per reachable member and
// pairs it with the relay message asking their agent to sync. The
// returned set holds the member IDs whose reports the poll loop
// should wait for: the requester and members without a working relay
// key are left out.
func (s *DefaultAvailabilityService) buildSyncTargets(ctx context.Context, members []models.Member, requesterID, teamID string, req models.FindSlotsRequest) ([]relay.Target, map[string]bool) {
	logger := utils.GetLogger()

	var targets []relay.Target
	expected := make(map[string]bool)
	for _, m := range members {
		if m.ID == requesterID {
			// The requester's own agent is driving this run.
			continue
		}
		key := s.openRelayKey(m)
		if key == "" {
			logger.Info("member has no relay key, skipping sync request", zap.String("memberId", m.ID))
			continue
		}

		token := uuid.New().String()
		data := models.SyncTokenData{
			Token:     token,
			MemberID:  m.ID,
			TeamID:    teamID,
			DateStart: req.StartDate,
			DateEnd:   req.EndDate,
			IssuedAt:  time.Now(),
		}
		if err := s.Tokens.Issue(ctx, data); err != nil {
			logger.Error("failed to issue sync token", zap.String("memberId", m.ID), zap.Error(err))
			continue
		}

		expected[m.ID] = true
		targets = append(targets, relay.Target{
			MemberID: m.ID,
			Name:     m.Name,
			RelayKey: key,
			Message:  relay.SyncRequestMessage(s.Integration, token, req.StartDate, req.EndDate),
		})
	}
	return targets, expected
}

// openRelayKey unseals a member's stored relay key. A member with no
// key, or a key that cannot be opened, is unreachable this run.
func (s *DefaultAvailabilityService) openRelayKey(m models.Member) string {
	if m.RelayKey == "" {
		return ""
	}
	key, err := utils.OpenKey(m.RelayKey)
	if err != nil {
		utils.GetLogger().Warn("failed to open relay key", zap.String("memberId", m.ID), zap.Error(err))
		return ""
	}
	return key
}

// waitForReports polls the report store until every expected member
// has synced for the exact range or the deadline lapses. Elapsed time
// counts slept intervals only, so an injected clock drives the loop
// instantly. Each iteration is a single snapshot read for the whole
// team.
func (s *DefaultAvailabilityService) waitForReports(ctx context.Context, memberIDs []string, dateStart, dateEnd string, expected map[string]bool) map[string]models.AvailabilityReport {
	logger := utils.GetLogger()

	snapshot := make(map[string]models.AvailabilityReport)
	read := func() {
		reports, err := s.Reports.GetTeamReports(ctx, memberIDs, dateStart, dateEnd)
		if err != nil {
			logger.Warn("failed to read availability snapshot", zap.Error(err))
			return
		}
		snapshot = reports
	}

	if len(expected) == 0 {
		// Nobody was asked to sync; a single read still picks up
		// reports stored by earlier runs.
		read()
		return snapshot
	}

	interval := s.Poll.Initial
	for elapsed := time.Duration(0); elapsed < s.Poll.Deadline; {
		s.Clock.Sleep(interval)
		elapsed += interval

		read()
		if hasAll(expected, snapshot) {
			break
		}

		interval = time.Duration(float64(interval) * s.Poll.Backoff)
		if interval > s.Poll.Cap {
			interval = s.Poll.Cap
		}
	}
	return snapshot
}

// hasAll reports whether every expected member ID has a report in the
// snapshot.
func hasAll(expected map[string]bool, snapshot map[string]models.AvailabilityReport) bool {
	for id := range expected {
		if _, ok := snapshot[id]; !ok {
			return false
		}
	}
	return true
}

// buildResult folds the snapshot into the caller-facing result. Every
// member without a stored report for the range is missing, the
// requester included: the poll loop never waited for them, but the
// computation still ran without their calendar.
func (s *DefaultAvailabilityService) buildResult(members []models.Member, snapshot map[string]models.AvailabilityReport, req models.FindSlotsRequest) *models.TeamSlotsResult {
	var reported []string
	var missing []string
	var allBusy [][]models.BusyInterval

	for _, m := range members {
		if report, ok := snapshot[m.ID]; ok {
			reported = append(reported, displayName(m))
			allBusy = append(allBusy, report.BusyTimes)
			continue
		}
		missing = append(missing, displayName(m))
	}

	if len(allBusy) == 0 {
		return &models.TeamSlotsResult{
			Success:  false,
			Message:  fmt.Sprintf("No availability data received yet. Missing: %s", strings.Join(missing, ", ")),
			Slots:    []models.FreeSlot{},
			Reported: reported,
			Missing:  missing,
		}
	}

	slots, err := calendar.FindFreeSlots(allBusy, req.DurationMinutes, req.StartDate, req.EndDate, s.DayStart, s.DayEnd)
	if err != nil {
		utils.GetLogger().Error("slot computation failed", zap.Error(err))
		return &models.TeamSlotsResult{
			Success:  false,
			Message:  fmt.Sprintf("Could not compute free slots: %v", err),
			Slots:    []models.FreeSlot{},
			Reported: reported,
			Missing:  missing,
		}
	}

	var msg string
	if len(slots) == 0 {
		msg = fmt.Sprintf("No %d-minute windows found where everyone is free between %s and %s.",
			req.DurationMinutes, req.StartDate, req.EndDate)
	} else {
		lines := make([]string, 0, maxSlotsInMessage)
		for _, slot := range slots {
			if len(lines) == maxSlotsInMessage {
				break
			}
			lines = append(lines, fmt.Sprintf("  - %s to %s", slot.Start, slot.End))
		}
		msg = fmt.Sprintf("Found %d open windows:\n%s", len(slots), strings.Join(lines, "\n"))
	}
	if len(missing) > 0 {
		msg += fmt.Sprintf("\n\n(Still waiting on: %s)", strings.Join(missing, ", "))
	}

	return &models.TeamSlotsResult{
		Success:  true,
		Message:  msg,
		Slots:    slots,
		Reported: reported,
		Missing:  missing,
	}
}

func displayName(m models.Member) string {
	if m.Name != "" {
		return m.Name
	}
	return "Unknown"
}
