package availability

import (
	"context"
	"testing"

	"huddle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookReq() models.BookMeetingRequest {
	return models.BookMeetingRequest{Title: "Design Review", StartTime: "2026-03-03T14:00:00", DurationMinutes: 45}
}

func TestBroadcastBookingReachesWholeTeam(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)
	f.addMember(t, "alice", "Alice", true)
	f.addMember(t, "bob", "Bob", true)

	result, err := f.svc.BroadcastBooking(context.Background(), f.teamID, "req-1", bookReq())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.SentCount)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, "Meeting 'Design Review' booking sent to 3/3 team members.", result.Message)

	require.Len(t, result.Details, 3)
	for _, d := range result.Details {
		assert.Equal(t, models.DispatchSent, d.Status)
	}

	// The booker's own agent gets the message too, so it can put the
	// event on their calendar.
	deliveries := f.transport.deliveries()
	require.Len(t, deliveries, 3)
	keys := make([]string, 0, 3)
	for _, d := range deliveries {
		keys = append(keys, d.relayKey)
		assert.Contains(t, d.message, "Schedule a meeting called 'Design Review' starting at 2026-03-03T14:00:00 for 45 minutes.")
		assert.Contains(t, d.message, "This was booked by Riley for the team.")
	}
	assert.Contains(t, keys, "relay-key-req-1")
}

func TestBroadcastBookingAbsorbsPerMemberFailures(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)
	f.addMember(t, "carol", "Carol", false)
	daveKey := f.addMember(t, "dave", "Dave", true)
	f.transport.fail[daveKey] = true

	result, err := f.svc.BroadcastBooking(context.Background(), f.teamID, "req-1", bookReq())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.SentCount)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, "Meeting 'Design Review' booking sent to 1/3 team members.", result.Message)

	require.Len(t, result.Details, 3)
	assert.Equal(t, models.DispatchSent, result.Details[0].Status)
	assert.Equal(t, models.DispatchSkipped, result.Details[1].Status)
	assert.Equal(t, "no relay key", result.Details[1].Reason)
	assert.Equal(t, models.DispatchFailed, result.Details[2].Status)
	assert.NotEmpty(t, result.Details[2].Reason)
}

func TestBroadcastBookingFailsWhenNobodyReachable(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", false)
	f.addMember(t, "carol", "Carol", false)

	result, err := f.svc.BroadcastBooking(context.Background(), f.teamID, "req-1", bookReq())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.SentCount)
	assert.Equal(t, "Meeting 'Design Review' booking sent to 0/2 team members.", result.Message)
}

func TestBroadcastBookingFallsBackToSomeone(t *testing.T) {
	f := newFixture(t)
	// A membership row without a member document: the booker has no
	// name to put in the message.
	f.joinTeam(t, "ghost")
	f.addMember(t, "alice", "Alice", true)

	result, err := f.svc.BroadcastBooking(context.Background(), f.teamID, "ghost", bookReq())
	require.NoError(t, err)
	assert.True(t, result.Success)

	deliveries := f.transport.deliveries()
	require.Len(t, deliveries, 1)
	assert.Contains(t, deliveries[0].message, "This was booked by Someone for the team.")
}

func TestBroadcastBookingStructuralErrors(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)

	t.Run("unknown team", func(t *testing.T) {
		_, err := f.svc.BroadcastBooking(context.Background(), "no-such-team", "req-1", bookReq())
		var notFound *TeamNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("booker outside team", func(t *testing.T) {
		_, err := f.svc.BroadcastBooking(context.Background(), f.teamID, "stranger", bookReq())
		var notMember *NotAMemberError
		require.ErrorAs(t, err, &notMember)
	})
}
