package brain

import "fmt"

// TeamNotFoundError is returned when a team ID resolves to nothing.
type TeamNotFoundError struct {
	TeamID string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team %s not found", e.TeamID)
}

// NotAMemberError is returned when the caller does not belong to the
// team whose brain they are using.
type NotAMemberError struct {
	TeamID   string
	MemberID string
}

func (e *NotAMemberError) Error() string {
	return fmt.Sprintf("member %s does not belong to team %s", e.MemberID, e.TeamID)
}

// ClassificationError is returned when the classifier cannot turn the
// input into a structured entry.
type ClassificationError struct {
	Reason string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %s", e.Reason)
}
