package team

import (
	"context"
	"regexp"
	"strings"
	"testing"

	memberRepo "huddle/database/repository/member"
	teamRepo "huddle/database/repository/team"
	"huddle/models"
	"huddle/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*DefaultTeamService, *memberRepo.MemoryMemberRepo, *teamRepo.MemoryTeamRepo) {
	members := memberRepo.NewMemoryMemberRepo()
	teams := teamRepo.NewMemoryTeamRepo()
	return &DefaultTeamService{Members: members, Teams: teams}, members, teams
}

func register(t *testing.T, svc *DefaultTeamService, name, email string) *models.AuthResponse {
	t.Helper()
	resp, err := svc.RegisterMember(models.RegisterMemberRequest{Name: name, Email: email})
	require.NoError(t, err)
	return resp
}

func TestRegisterMemberIssuesToken(t *testing.T) {
	svc, members, _ := newService()

	resp := register(t, svc, "Riley", "riley@example.com")
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.Member.ID)
	assert.Equal(t, "Riley", resp.Member.Name)

	// Only the hash is stored; presenting the raw token must match it.
	stored, err := members.GetByID(resp.Member.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
	assert.Empty(t, stored.RelayKey)
}

func TestRegisterMemberRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc, "Riley", "riley@example.com")

	_, err := svc.RegisterMember(models.RegisterMemberRequest{Name: "Other", Email: "riley@example.com"})
	var taken *EmailTakenError
	require.ErrorAs(t, err, &taken)
}

func TestCreateTeamSeatsCreatorAsAdmin(t *testing.T) {
	svc, _, teams := newService()
	creator := register(t, svc, "Riley", "riley@example.com")

	created, err := svc.CreateTeam(context.Background(), creator.Member.ID, "Platform")
	require.NoError(t, err)

	assert.Equal(t, "Platform", created.Name)
	assert.Equal(t, creator.Member.ID, created.CreatedBy)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), created.InviteCode)

	ok, err := teams.IsMember(context.Background(), created.ID, creator.Member.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestJoinTeamByInviteCode(t *testing.T) {
	svc, _, _ := newService()
	creator := register(t, svc, "Riley", "riley@example.com")
	joiner := register(t, svc, "Alice", "alice@example.com")

	created, err := svc.CreateTeam(context.Background(), creator.Member.ID, "Platform")
	require.NoError(t, err)

	// Codes are read aloud, so lowercase and padding must still work.
	joined, err := svc.JoinTeam(context.Background(), joiner.Member.ID, "  "+strings.ToLower(created.InviteCode)+" ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, joined.ID)

	mine, err := svc.MyTeams(context.Background(), joiner.Member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
}

func TestJoinTeamRejectsRepeatAndBadCodes(t *testing.T) {
	svc, _, _ := newService()
	creator := register(t, svc, "Riley", "riley@example.com")
	joiner := register(t, svc, "Alice", "alice@example.com")

	created, err := svc.CreateTeam(context.Background(), creator.Member.ID, "Platform")
	require.NoError(t, err)

	_, err = svc.JoinTeam(context.Background(), joiner.Member.ID, created.InviteCode)
	require.NoError(t, err)

	_, err = svc.JoinTeam(context.Background(), joiner.Member.ID, created.InviteCode)
	var already *AlreadyMemberError
	require.ErrorAs(t, err, &already)

	_, err = svc.JoinTeam(context.Background(), joiner.Member.ID, "ZZZZZZZZ")
	var invalid *InvalidInviteCodeError
	require.ErrorAs(t, err, &invalid)
}

func TestMyTeamsEmptyForNewMember(t *testing.T) {
	svc, _, _ := newService()
	m := register(t, svc, "Riley", "riley@example.com")

	mine, err := svc.MyTeams(context.Background(), m.Member.ID)
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)
}

func TestTeamDetailExposesConnectionNotKeys(t *testing.T) {
	svc, members, _ := newService()
	creator := register(t, svc, "Riley", "riley@example.com")
	other := register(t, svc, "Alice", "alice@example.com")

	created, err := svc.CreateTeam(context.Background(), creator.Member.ID, "Platform")
	require.NoError(t, err)
	_, err = svc.JoinTeam(context.Background(), other.Member.ID, created.InviteCode)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateRelayKey(context.Background(), created.ID, other.Member.ID, "relay-key-alice"))

	detail, err := svc.TeamDetail(context.Background(), created.ID, creator.Member.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.Team.ID)
	require.Len(t, detail.Members, 2)

	byID := map[string]models.TeamMemberView{}
	for _, v := range detail.Members {
		byID[v.ID] = v
	}
	assert.False(t, byID[creator.Member.ID].RelayConnected)
	assert.True(t, byID[other.Member.ID].RelayConnected)

	// The stored key is sealed, never the raw value.
	stored, err := members.GetByID(other.Member.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "relay-key-alice", stored.RelayKey)
	opened, err := utils.OpenKey(stored.RelayKey)
	require.NoError(t, err)
	assert.Equal(t, "relay-key-alice", opened)
}

func TestTeamScopedOperationsRejectOutsiders(t *testing.T) {
	svc, _, _ := newService()
	creator := register(t, svc, "Riley", "riley@example.com")
	outsider := register(t, svc, "Eve", "eve@example.com")

	created, err := svc.CreateTeam(context.Background(), creator.Member.ID, "Platform")
	require.NoError(t, err)

	var notMember *NotAMemberError
	_, err = svc.TeamDetail(context.Background(), created.ID, outsider.Member.ID)
	require.ErrorAs(t, err, &notMember)

	err = svc.UpdateRelayKey(context.Background(), created.ID, outsider.Member.ID, "key")
	require.ErrorAs(t, err, &notMember)

	var notFound *TeamNotFoundError
	_, err = svc.TeamDetail(context.Background(), "no-such-team", creator.Member.ID)
	require.ErrorAs(t, err, &notFound)
}
