// File: database/repository/team/memory.go
package teamRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"huddle/models"

	"github.com/google/uuid"
)

// MemoryTeamRepo is an in-process TeamRepository used in memory mode
// and in tests.
type MemoryTeamRepo struct {
	mu          sync.RWMutex
	teams       map[string]models.Team
	memberships []models.Membership
}

// NewMemoryTeamRepo creates an empty in-memory team repository.
func NewMemoryTeamRepo() *MemoryTeamRepo {
	return &MemoryTeamRepo{teams: make(map[string]models.Team)}
}

func (r *MemoryTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	team.CreatedAt = time.Now()
	r.teams[team.ID] = *team
	return nil
}

func (r *MemoryTeamRepo) GetByID(_ context.Context, id string) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[id]
	if !ok {
		return nil, nil
	}
	out := t
	return &out, nil
}

func (r *MemoryTeamRepo) GetByInviteCode(_ context.Context, code string) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.teams {
		if t.InviteCode == code {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryTeamRepo) AddMembership(_ context.Context, membership models.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.memberships {
		if m.TeamID == membership.TeamID && m.MemberID == membership.MemberID {
			return fmt.Errorf("failed to add membership: duplicate")
		}
	}
	membership.JoinedAt = time.Now()
	r.memberships = append(r.memberships, membership)
	return nil
}

func (r *MemoryTeamRepo) IsMember(_ context.Context, teamID, memberID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.memberships {
		if m.TeamID == teamID && m.MemberID == memberID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryTeamRepo) GetMemberIDs(_ context.Context, teamID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, m := range r.memberships {
		if m.TeamID == teamID {
			ids = append(ids, m.MemberID)
		}
	}
	return ids, nil
}

func (r *MemoryTeamRepo) GetTeamsForMember(_ context.Context, memberID string) ([]models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var teams []models.Team
	for _, m := range r.memberships {
		if m.MemberID == memberID {
			if t, ok := r.teams[m.TeamID]; ok {
				teams = append(teams, t)
			}
		}
	}
	return teams, nil
}
