package team

import (
	"context"

	memberRepo "huddle/database/repository/member"
	teamRepo "huddle/database/repository/team"
	"huddle/models"
)

// TeamService handles member accounts and team membership.
type TeamService interface {
	// RegisterMember creates an account and returns the bearer token
	// the client must present on subsequent requests. The token is
	// shown once; only its hash is stored.
	RegisterMember(req models.RegisterMemberRequest) (*models.AuthResponse, error)

	// UpdateRelayKey seals and stores the member's relay API key so
	// the team can send them sync and booking messages. The caller
	// must belong to the team they are updating through.
	UpdateRelayKey(ctx context.Context, teamID, memberID, relayKey string) error

	// CreateTeam creates a team with a fresh invite code and seats
	// the creator as admin.
	CreateTeam(ctx context.Context, creatorID, name string) (*models.Team, error)

	// JoinTeam adds the member to the team behind the invite code.
	JoinTeam(ctx context.Context, memberID, inviteCode string) (*models.Team, error)

	// PreviewTeam resolves an invite code to its team without joining,
	// so a prospective member can confirm the code before signing up.
	PreviewTeam(ctx context.Context, inviteCode string) (*models.Team, error)

	// MyTeams lists every team the member belongs to.
	MyTeams(ctx context.Context, memberID string) ([]models.Team, error)

	// TeamDetail returns the team and its roster with relay keys
	// stripped. The requester must be a member.
	TeamDetail(ctx context.Context, teamID, requesterID string) (*models.TeamDetail, error)
}

// DefaultTeamService is the production implementation.
type DefaultTeamService struct {
	Members memberRepo.MemberRepository
	Teams   teamRepo.TeamRepository
}
