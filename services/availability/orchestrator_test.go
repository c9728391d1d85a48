package availability

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	availabilityRepo "huddle/database/repository/availability"
	memberRepo "huddle/database/repository/member"
	synctokenRepo "huddle/database/repository/synctoken"
	teamRepo "huddle/database/repository/team"
	"huddle/models"
	"huddle/services/relay"
	"huddle/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	relayKey string
	message  string
}

// stubTransport records deliveries and can be told to fail specific
// relay keys.
type stubTransport struct {
	mu   sync.Mutex
	fail map[string]bool
	sent []sentMessage
}

func (s *stubTransport) Send(_ context.Context, relayKey, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[relayKey] {
		return errors.New("relay rejected the message")
	}
	s.sent = append(s.sent, sentMessage{relayKey: relayKey, message: message})
	return nil
}

func (s *stubTransport) deliveries() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentMessage, len(s.sent))
	copy(out, s.sent)
	return out
}

// manualClock records sleeps without waiting and can run a hook after
// each one, which lets tests deliver reports mid-poll.
type manualClock struct {
	sleeps  []time.Duration
	onSleep func(n int)
}

func (c *manualClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	if c.onSleep != nil {
		c.onSleep(len(c.sleeps))
	}
}

type fixture struct {
	svc       *DefaultAvailabilityService
	teams     *teamRepo.MemoryTeamRepo
	members   *memberRepo.MemoryMemberRepo
	reports   *availabilityRepo.MemoryAvailabilityRepo
	tokens    *synctokenRepo.MemorySyncTokenRepo
	transport *stubTransport
	clock     *manualClock
	teamID    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		teams:     teamRepo.NewMemoryTeamRepo(),
		members:   memberRepo.NewMemoryMemberRepo(),
		reports:   availabilityRepo.NewMemoryAvailabilityRepo(),
		tokens:    synctokenRepo.NewMemorySyncTokenRepo(),
		transport: &stubTransport{fail: make(map[string]bool)},
		clock:     &manualClock{},
	}
	f.svc = &DefaultAvailabilityService{
		Teams:   f.teams,
		Members: f.members,
		Reports: f.reports,
		Tokens:  f.tokens,
		Relay:   &relay.DefaultRelayService{Transport: f.transport},
		Poll: PollConfig{
			Initial:  2 * time.Second,
			Backoff:  1.3,
			Cap:      5 * time.Second,
			Deadline: 45 * time.Second,
		},
		Clock:       f.clock,
		DayStart:    9,
		DayEnd:      18,
		Integration: "Huddle",
	}

	team := &models.Team{ID: "team-1", Name: "Platform", InviteCode: "AB12CD34", CreatedBy: "req-1"}
	require.NoError(t, f.teams.Create(context.Background(), team))
	f.teamID = team.ID
	return f
}

// addMember creates a member, joins them to the fixture team, and
// returns the raw relay key that was sealed onto their record. The
// returned key is empty for members without a relay agent.
func (f *fixture) addMember(t *testing.T, id, name string, withKey bool) string {
	t.Helper()

	m := &models.Member{ID: id, Name: name, Email: strings.ToLower(name) + "@example.com"}
	rawKey := ""
	if withKey {
		rawKey = "relay-key-" + id
		sealed, err := utils.SealKey(rawKey)
		require.NoError(t, err)
		m.RelayKey = sealed
	}
	require.NoError(t, f.members.Create(m))
	f.joinTeam(t, id)
	return rawKey
}

func (f *fixture) joinTeam(t *testing.T, memberID string) {
	t.Helper()
	require.NoError(t, f.teams.AddMembership(context.Background(), models.Membership{
		TeamID:   f.teamID,
		MemberID: memberID,
		Role:     models.RoleMember,
	}))
}

func (f *fixture) storeReport(t *testing.T, memberID string, busy []models.BusyInterval) {
	t.Helper()
	require.NoError(t, f.reports.Upsert(context.Background(), &models.AvailabilityReport{
		MemberID:  memberID,
		DateStart: "2026-03-02",
		DateEnd:   "2026-03-06",
		BusyTimes: busy,
	}))
}

// slotsReq covers the business week Mon 2026-03-02 through Fri
// 2026-03-06.
func slotsReq() models.FindSlotsRequest {
	return models.FindSlotsRequest{DurationMinutes: 60, StartDate: "2026-03-02", EndDate: "2026-03-06"}
}

func TestFindTeamSlotsComputesFromReports(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)
	f.addMember(t, "alice", "Alice", true)
	f.addMember(t, "bob", "Bob", true)

	// Both reports land while the loop sleeps for the first time.
	f.clock.onSleep = func(n int) {
		if n != 1 {
			return
		}
		f.storeReport(t, "alice", []models.BusyInterval{{Start: "2026-03-02T12:00:00", End: "2026-03-02T13:00:00"}})
		f.storeReport(t, "bob", []models.BusyInterval{{Start: "2026-03-02T09:00:00", End: "2026-03-02T10:00:00"}})
	}

	result, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "req-1", slotsReq())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"Alice", "Bob"}, result.Reported)
	// The requester never synced through the store, so they are
	// reported missing even though the loop did not wait for them.
	assert.Equal(t, []string{"Riley"}, result.Missing)

	// Monday splits around the two busy blocks, the other four
	// weekdays stay whole.
	require.Len(t, result.Slots, 6)
	assert.Equal(t, "2026-03-02T10:00:00", result.Slots[0].Start)
	assert.Equal(t, "2026-03-02T12:00:00", result.Slots[0].End)
	assert.Equal(t, 120, result.Slots[0].DurationMinutes)
	assert.Equal(t, "2026-03-02T13:00:00", result.Slots[1].Start)

	assert.True(t, strings.HasPrefix(result.Message, "Found 6 open windows:\n"))
	assert.Contains(t, result.Message, "  - 2026-03-02T10:00:00 to 2026-03-02T12:00:00")
	assert.True(t, strings.HasSuffix(result.Message, "(Still waiting on: Riley)"))

	// One poll iteration was enough, and it read the store once.
	assert.Equal(t, []time.Duration{2 * time.Second}, f.clock.sleeps)
	assert.Equal(t, 1, f.reports.Reads)

	// The requester got no sync request; the two others got one
	// message each carrying a one-time token and the range.
	deliveries := f.transport.deliveries()
	require.Len(t, deliveries, 2)
	keys := []string{deliveries[0].relayKey, deliveries[1].relayKey}
	assert.ElementsMatch(t, []string{"relay-key-alice", "relay-key-bob"}, keys)
	for _, d := range deliveries {
		assert.Contains(t, d.message, `"Huddle" integration's sync_my_calendar tool`)
		assert.Contains(t, d.message, "sync_token=")
		assert.Contains(t, d.message, "start_date=2026-03-02")
		assert.Contains(t, d.message, "end_date=2026-03-06")
	}
}

func TestFindTeamSlotsDeadlineWithNoReports(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)
	f.addMember(t, "alice", "Alice", true)
	f.addMember(t, "bob", "Bob", true)

	result, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "req-1", slotsReq())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "No availability data received yet. Missing: Riley, Alice, Bob", result.Message)
	assert.Empty(t, result.Slots)
	assert.Empty(t, result.Reported)
	assert.Equal(t, []string{"Riley", "Alice", "Bob"}, result.Missing)

	// The interval grows by 1.3x per iteration and caps at 5s; the
	// loop stops once slept time passes the 45s deadline.
	sleeps := f.clock.sleeps
	require.Len(t, sleeps, 11)
	assert.Equal(t, 2*time.Second, sleeps[0])
	assert.Equal(t, 2600*time.Millisecond, sleeps[1])
	assert.Equal(t, 3380*time.Millisecond, sleeps[2])
	assert.Equal(t, 4394*time.Millisecond, sleeps[3])
	assert.Equal(t, 5*time.Second, sleeps[4])
	assert.Equal(t, 5*time.Second, sleeps[len(sleeps)-1])

	// One snapshot read per iteration, never a per-member storm.
	assert.Equal(t, len(sleeps), f.reports.Reads)
}

func TestFindTeamSlotsPartialReports(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)
	f.addMember(t, "alice", "Alice", true)
	f.addMember(t, "bob", "Bob", true)

	// Alice reports right away; Bob never does, so the loop runs to
	// the deadline and the result is computed from partial data.
	f.clock.onSleep = func(n int) {
		if n == 1 {
			f.storeReport(t, "alice", []models.BusyInterval{{Start: "2026-03-02T09:00:00", End: "2026-03-02T17:00:00"}})
		}
	}

	result, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "req-1", slotsReq())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"Alice"}, result.Reported)
	assert.Equal(t, []string{"Riley", "Bob"}, result.Missing)
	require.Len(t, result.Slots, 5)
	assert.Equal(t, "2026-03-02T17:00:00", result.Slots[0].Start)
	assert.True(t, strings.HasSuffix(result.Message, "\n\n(Still waiting on: Riley, Bob)"))
	assert.Len(t, f.clock.sleeps, 11)
}

func TestFindTeamSlotsSkipsMembersWithoutRelayKey(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)
	f.addMember(t, "carol", "Carol", false)
	f.addMember(t, "dave", "Dave", true)

	f.clock.onSleep = func(n int) {
		if n == 1 {
			f.storeReport(t, "dave", nil)
		}
	}

	result, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "req-1", slotsReq())
	require.NoError(t, err)

	// Carol could never report, so the loop does not wait for her;
	// she still shows up as missing in the answer.
	assert.True(t, result.Success)
	assert.Equal(t, []string{"Dave"}, result.Reported)
	assert.Equal(t, []string{"Riley", "Carol"}, result.Missing)
	assert.True(t, strings.HasSuffix(result.Message, "(Still waiting on: Riley, Carol)"))
	assert.Len(t, f.clock.sleeps, 1)

	deliveries := f.transport.deliveries()
	require.Len(t, deliveries, 1)
	assert.Equal(t, "relay-key-dave", deliveries[0].relayKey)
}

func TestFindTeamSlotsUsesStoredRequesterReport(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)

	// A report from an earlier run covers the same range; with no
	// other members to wait for, the loop is skipped entirely.
	f.storeReport(t, "req-1", []models.BusyInterval{{Start: "2026-03-02T09:00:00", End: "2026-03-02T18:00:00"}})

	result, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "req-1", slotsReq())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"Riley"}, result.Reported)
	assert.Empty(t, result.Missing)
	require.Len(t, result.Slots, 4)
	assert.Equal(t, "2026-03-03T09:00:00", result.Slots[0].Start)

	assert.Empty(t, f.clock.sleeps)
	assert.Equal(t, 1, f.reports.Reads)
	assert.Empty(t, f.transport.deliveries())
}

func TestFindTeamSlotsNoMemberRecords(t *testing.T) {
	f := newFixture(t)
	// A membership row without a member document behind it.
	f.joinTeam(t, "ghost")

	result, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "ghost", slotsReq())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No team members found.", result.Message)
}

func TestFindTeamSlotsStructuralErrors(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)

	t.Run("unknown team", func(t *testing.T) {
		_, err := f.svc.FindTeamSlots(context.Background(), "no-such-team", "req-1", slotsReq())
		var notFound *TeamNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("requester outside team", func(t *testing.T) {
		_, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "stranger", slotsReq())
		var notMember *NotAMemberError
		require.ErrorAs(t, err, &notMember)
	})

	t.Run("unparseable range", func(t *testing.T) {
		req := slotsReq()
		req.StartDate = "sometime soon"
		_, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "req-1", req)
		var badRange *InvalidRangeError
		require.ErrorAs(t, err, &badRange)
		// Nothing was dispatched for a request that never started.
		assert.Empty(t, f.transport.deliveries())
		assert.Empty(t, f.clock.sleeps)
	})
}

func TestFindTeamSlotsDefaultsDuration(t *testing.T) {
	f := newFixture(t)
	f.addMember(t, "req-1", "Riley", true)
	f.addMember(t, "alice", "Alice", true)

	f.clock.onSleep = func(n int) {
		if n == 1 {
			// Leaves a 30-minute gap before a meeting that fills the
			// rest of Monday, so only a 30-minute default fits.
			f.storeReport(t, "alice", []models.BusyInterval{{Start: "2026-03-02T09:30:00", End: "2026-03-02T18:00:00"}})
		}
	}

	req := models.FindSlotsRequest{StartDate: "2026-03-02", EndDate: "2026-03-02"}
	result, err := f.svc.FindTeamSlots(context.Background(), f.teamID, "req-1", req)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.Slots, 1)
	assert.Equal(t, 30, result.Slots[0].DurationMinutes)
}
