package availability

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

// InvalidTokenError is returned when a sync callback carries a token
// that is unknown, expired, or already consumed.
type InvalidTokenError struct{}

func (e *InvalidTokenError) Error() string {
	return "invalid or already-used sync token"
}

// InvalidRangeError is returned when a requested date range cannot be
// parsed.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: %s", e.Reason)
}

// InvalidPayloadError is returned when a sync callback body cannot be
// turned into busy intervals, for example a broken ICS export.
type InvalidPayloadError struct {
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid sync payload: %s", e.Reason)
}
