// File: database/repository/team/interface.go
package teamRepo

import (
	"context"

	"huddle/models"
)

// TeamRepository defines methods for team and membership data access.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	// GetByInviteCode retrieves a team by invite code, nil when absent.
	GetByInviteCode(ctx context.Context, code string) (*models.Team, error)
	AddMembership(ctx context.Context, membership models.Membership) error
	IsMember(ctx context.Context, teamID, memberID string) (bool, error)
	// GetMemberIDs returns the IDs of every member of the team.
	GetMemberIDs(ctx context.Context, teamID string) ([]string, error)
	// GetTeamsForMember returns every team the member belongs to.
	GetTeamsForMember(ctx context.Context, memberID string) ([]models.Team, error)
}
