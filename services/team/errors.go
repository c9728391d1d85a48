package team

import "fmt"

// TeamNotFoundError is returned when a team ID resolves to nothing.
type TeamNotFoundError struct {
	TeamID string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team %s not found", e.TeamID)
}

// NotAMemberError is returned when the caller does not belong to the
// team they are operating on.
type NotAMemberError struct {
	TeamID   string
	MemberID string
}

func (e *NotAMemberError) Error() string {
	return fmt.Sprintf("member %s does not belong to team %s", e.MemberID, e.TeamID)
}

// InvalidInviteCodeError is returned when an invite code matches no
// team.
type InvalidInviteCodeError struct{}

func (e *InvalidInviteCodeError) Error() string {
	return "invalid invite code"
}

// AlreadyMemberError is returned when a member tries to join a team
// they already belong to.
type AlreadyMemberError struct {
	TeamID string
}

func (e *AlreadyMemberError) Error() string {
	return fmt.Sprintf("already a member of team %s", e.TeamID)
}

// EmailTakenError is returned when registration reuses an email.
type EmailTakenError struct {
	Email string
}

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("a member with email %s already exists", e.Email)
}
