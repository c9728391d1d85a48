package availability

import (
	"context"
	"time"

	"huddle/config"
	availabilityRepo "huddle/database/repository/availability"
	memberRepo "huddle/database/repository/member"
	synctokenRepo "huddle/database/repository/synctoken"
	teamRepo "huddle/database/repository/team"
	"huddle/models"
	"huddle/services/relay"
)

// AvailabilityService coordinates team calendar runs: requesting
// syncs over the relay, ingesting the callbacks, and computing the
// windows where every reporting member is free.
type AvailabilityService interface {
	// FindTeamSlots runs the full flow for one team: mint one-time
	// tokens, dispatch sync requests to every member except the
	// requester, wait for reports under a deadline, then compute
	// common free slots from whatever data arrived.
	FindTeamSlots(ctx context.Context, teamID, requesterID string, req models.FindSlotsRequest) (*models.TeamSlotsResult, error)

	// SyncReport consumes a one-time sync token and stores the busy
	// times it vouches for.
	SyncReport(ctx context.Context, req models.SyncReportRequest) (*models.AvailabilityReport, error)

	// BroadcastBooking tells every team member's relay agent to put
	// a meeting on their calendar. No polling; delivery outcomes are
	// the whole answer.
	BroadcastBooking(ctx context.Context, teamID, bookerID string, req models.BookMeetingRequest) (*models.BookingBroadcastResult, error)
}

// PollConfig tunes the wait loop that runs between dispatching sync
// requests and computing slots. The interval grows by Backoff after
// each read, capped at Cap; Deadline bounds total slept time.
type PollConfig struct {
	Initial  time.Duration
	Backoff  float64
	Cap      time.Duration
	Deadline time.Duration
}

// DefaultPollConfig builds the poll settings from application config.
func DefaultPollConfig() PollConfig {
	cfg := config.AppConfig
	pc := PollConfig{
		Initial:  time.Duration(cfg.SyncPollInitialMS) * time.Millisecond,
		Backoff:  cfg.SyncPollBackoff,
		Cap:      time.Duration(cfg.SyncPollCapMS) * time.Millisecond,
		Deadline: time.Duration(cfg.SyncPollDeadlineMS) * time.Millisecond,
	}
	if pc.Initial <= 0 {
		pc.Initial = 2 * time.Second
	}
	if pc.Backoff < 1 {
		pc.Backoff = 1.3
	}
	if pc.Cap < pc.Initial {
		pc.Cap = 5 * time.Second
	}
	if pc.Deadline <= 0 {
		pc.Deadline = 45 * time.Second
	}
	return pc
}

// Clock abstracts the poll loop's sleeping so tests can drive the
// loop without real delays.
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// NewRealClock returns a Clock backed by time.Sleep.
func NewRealClock() Clock { return realClock{} }

// DefaultAvailabilityService is the production implementation of
// AvailabilityService.
type DefaultAvailabilityService struct {
	Teams       teamRepo.TeamRepository
	Members     memberRepo.MemberRepository
	Reports     availabilityRepo.AvailabilityRepository
	Tokens      synctokenRepo.SyncTokenRepository
	Relay       relay.RelayService
	Poll        PollConfig
	Clock       Clock
	DayStart    int
	DayEnd      int
	Integration string
}

// NewDefaultService wires a DefaultAvailabilityService from application
// config and the given stores.
func NewDefaultService(
	teams teamRepo.TeamRepository,
	members memberRepo.MemberRepository,
	reports availabilityRepo.AvailabilityRepository,
	tokens synctokenRepo.SyncTokenRepository,
	relaySvc relay.RelayService,
) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Teams:       teams,
		Members:     members,
		Reports:     reports,
		Tokens:      tokens,
		Relay:       relaySvc,
		Poll:        DefaultPollConfig(),
		Clock:       NewRealClock(),
		DayStart:    config.AppConfig.DayStartHour,
		DayEnd:      config.AppConfig.DayEndHour,
		Integration: config.AppConfig.RelayIntegrationName,
	}
}
