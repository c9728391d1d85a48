// File: services/team/team.go
package team

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"huddle/models"

	"github.com/google/uuid"
)

// newInviteCode produces the 8-character uppercase hex code members
// type to join a team.
func newInviteCode() (string, error) {
	raw := make([]byte, 4)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}

// requireMembership loads the team and checks the caller belongs to
// it. Shared by every team-scoped operation.
func (s *DefaultTeamService) requireMembership(ctx context.Context, teamID, memberID string) (*models.Team, error) {
	team, err := s.Teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return nil, &TeamNotFoundError{TeamID: teamID}
	}
	ok, err := s.Teams.IsMember(ctx, teamID, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !ok {
		return nil, &NotAMemberError{TeamID: teamID, MemberID: memberID}
	}
	return team, nil
}

// CreateTeam creates the team and seats the creator as admin.
func (s *DefaultTeamService) CreateTeam(ctx context.Context, creatorID, name string) (*models.Team, error) {
	code, err := newInviteCode()
	if err != nil {
		return nil, err
	}

	team := models.Team{
		ID:         uuid.New().String(),
		Name:       name,
		InviteCode: code,
		CreatedBy:  creatorID,
	}
	if err := s.Teams.Create(ctx, &team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	if err := s.Teams.AddMembership(ctx, models.Membership{
		TeamID:   team.ID,
		MemberID: creatorID,
		Role:     models.RoleAdmin,
	}); err != nil {
		return nil, fmt.Errorf("failed to seat team creator: %w", err)
	}
	return &team, nil
}

// JoinTeam resolves the invite code and adds the member. Codes are
// matched case-insensitively since people read them aloud.
func (s *DefaultTeamService) JoinTeam(ctx context.Context, memberID, inviteCode string) (*models.Team, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	team, err := s.Teams.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if team == nil {
		return nil, &InvalidInviteCodeError{}
	}

	ok, err := s.Teams.IsMember(ctx, team.ID, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if ok {
		return nil, &AlreadyMemberError{TeamID: team.ID}
	}

	if err := s.Teams.AddMembership(ctx, models.Membership{
		TeamID:   team.ID,
		MemberID: memberID,
		Role:     models.RoleMember,
	}); err != nil {
		return nil, fmt.Errorf("failed to join team: %w", err)
	}
	return team, nil
}

// PreviewTeam resolves an invite code without joining the team.
func (s *DefaultTeamService) PreviewTeam(ctx context.Context, inviteCode string) (*models.Team, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	team, err := s.Teams.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if team == nil {
		return nil, &InvalidInviteCodeError{}
	}
	return team, nil
}

// MyTeams lists every team the member belongs to.
func (s *DefaultTeamService) MyTeams(ctx context.Context, memberID string) ([]models.Team, error) {
	teams, err := s.Teams.GetTeamsForMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams, nil
}

// TeamDetail returns the team and its roster. Relay keys never leave
// the server; the roster only says whether each member has one.
func (s *DefaultTeamService) TeamDetail(ctx context.Context, teamID, requesterID string) (*models.TeamDetail, error) {
	team, err := s.requireMembership(ctx, teamID, requesterID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.Teams.GetMemberIDs(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	members, err := s.Members.GetByIDs(memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}

	views := make([]models.TeamMemberView, 0, len(members))
	for _, m := range members {
		views = append(views, models.TeamMemberView{
			ID:             m.ID,
			Name:           m.Name,
			Email:          m.Email,
			RelayConnected: m.HasRelayKey(),
		})
	}
	return &models.TeamDetail{Team: *team, Members: views}, nil
}
