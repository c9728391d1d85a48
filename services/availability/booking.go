// File: services/availability/booking.go
package availability

import (
	"context"
	"fmt"

	"huddle/models"
	"huddle/services/relay"
)

// BroadcastBooking fans a meeting notification out to every team
// member's relay agent, the booker included, so each agent can put
// the event on its own calendar. Per-member delivery failures are
// absorbed into the outcome details; success means at least one
// member got the message.
func (s *DefaultAvailabilityService) BroadcastBooking(ctx context.Context, teamID, bookerID string, req models.BookMeetingRequest) (*models.BookingBroadcastResult, error) {
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 30
	}

	team, err := s.Teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return nil, &TeamNotFoundError{TeamID: teamID}
	}
	if ok, err := s.Teams.IsMember(ctx, teamID, bookerID); err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	} else if !ok {
		return nil, &NotAMemberError{TeamID: teamID, MemberID: bookerID}
	}

	memberIDs, err := s.Teams.GetMemberIDs(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	members, err := s.Members.GetByIDs(memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}

	var bookedBy string
	for _, m := range members {
		if m.ID == bookerID {
			bookedBy = m.Name
			break
		}
	}
	message := relay.BookingMessage(req.Title, req.StartTime, req.DurationMinutes, bookedBy)

	targets := make([]relay.Target, 0, len(members))
	for _, m := range members {
		targets = append(targets, relay.Target{
			MemberID: m.ID,
			Name:     m.Name,
			RelayKey: s.openRelayKey(m),
			Message:  message,
		})
	}

	outcomes := s.Relay.DispatchBatch(ctx, targets)
	sent := relay.SentCount(outcomes)
	return &models.BookingBroadcastResult{
		Success:   sent > 0,
		Message:   fmt.Sprintf("Meeting '%s' booking sent to %d/%d team members.", req.Title, sent, len(members)),
		SentCount: sent,
		Total:     len(members),
		Details:   outcomes,
	}, nil
}
