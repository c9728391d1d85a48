package teamRepo

import (
	"context"
	"testing"

	"huddle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipLifecycle(t *testing.T) {
	repo := NewMemoryTeamRepo()
	ctx := context.Background()

	team := &models.Team{Name: "Platform", InviteCode: "AB12CD34", CreatedBy: "m1"}
	require.NoError(t, repo.Create(ctx, team))
	require.NotEmpty(t, team.ID)

	require.NoError(t, repo.AddMembership(ctx, models.Membership{TeamID: team.ID, MemberID: "m1", Role: models.RoleAdmin}))
	require.NoError(t, repo.AddMembership(ctx, models.Membership{TeamID: team.ID, MemberID: "m2", Role: models.RoleMember}))

	// Joining twice is rejected.
	err := repo.AddMembership(ctx, models.Membership{TeamID: team.ID, MemberID: "m2", Role: models.RoleMember})
	assert.Error(t, err)

	ok, err := repo.IsMember(ctx, team.ID, "m2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsMember(ctx, team.ID, "stranger")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := repo.GetMemberIDs(ctx, team.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"m1", "m2"}, ids)
}

func TestGetByInviteCode(t *testing.T) {
	repo := NewMemoryTeamRepo()
	ctx := context.Background()

	team := &models.Team{Name: "Design", InviteCode: "ZZ99YY88", CreatedBy: "m1"}
	require.NoError(t, repo.Create(ctx, team))

	found, err := repo.GetByInviteCode(ctx, "ZZ99YY88")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, team.ID, found.ID)

	missing, err := repo.GetByInviteCode(ctx, "NOPE0000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetTeamsForMember(t *testing.T) {
	repo := NewMemoryTeamRepo()
	ctx := context.Background()

	a := &models.Team{Name: "A", InviteCode: "AAAA1111", CreatedBy: "m1"}
	b := &models.Team{Name: "B", InviteCode: "BBBB2222", CreatedBy: "m2"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.AddMembership(ctx, models.Membership{TeamID: a.ID, MemberID: "m1", Role: models.RoleAdmin}))
	require.NoError(t, repo.AddMembership(ctx, models.Membership{TeamID: b.ID, MemberID: "m1", Role: models.RoleMember}))

	teams, err := repo.GetTeamsForMember(ctx, "m1")
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	none, err := repo.GetTeamsForMember(ctx, "m9")
	require.NoError(t, err)
	assert.Empty(t, none)
}
