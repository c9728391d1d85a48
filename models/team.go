package models

import "time"

// Team groups members who coordinate availability with each other.
type Team struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	InviteCode string    `bson:"inviteCode" json:"inviteCode"`
	CreatedBy  string    `bson:"createdBy" json:"createdBy"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Membership links a member to a team.
type Membership struct {
	TeamID   string    `bson:"teamId" json:"teamId"`
	MemberID string    `bson:"memberId" json:"memberId"`
	Role     string    `bson:"role" json:"role"` // "admin" or "member"
	JoinedAt time.Time `bson:"joinedAt" json:"joinedAt"`
}

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// TeamMemberView is the member shape returned in team listings:
// relay keys are stripped, only connection status is exposed.
type TeamMemberView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	RelayConnected bool   `json:"relayConnected"`
}

// TeamDetail bundles a team with its member roster.
type TeamDetail struct {
	Team    Team             `json:"team"`
	Members []TeamMemberView `json:"members"`
}

// CreateTeamRequest defines the payload for creating a team.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// JoinTeamRequest defines the payload for joining a team by invite code.
type JoinTeamRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}
