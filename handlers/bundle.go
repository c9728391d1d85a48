// File: handlers/bundle.go
package handlers

import (
	memberRepoPkg "huddle/database/repository/member"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler plus the repository the
// auth middleware verifies tokens against.
type HandlerBundle struct {
	MemberRepo memberRepoPkg.MemberRepository

	// Member endpoints
	RegisterMemberHandler gin.HandlerFunc
	UpdateRelayKeyHandler gin.HandlerFunc

	// Team endpoints
	CreateTeamHandler  gin.HandlerFunc
	PreviewTeamHandler gin.HandlerFunc
	JoinTeamHandler    gin.HandlerFunc
	MyTeamsHandler     gin.HandlerFunc
	TeamDetailHandler  gin.HandlerFunc
	ListMembersHandler gin.HandlerFunc

	// Availability endpoints
	FindAvailabilityHandler gin.HandlerFunc
	SyncCalendarHandler     gin.HandlerFunc
	BookMeetingHandler      gin.HandlerFunc

	// Brain endpoints
	DumpHandler    gin.HandlerFunc
	QueryHandler   gin.HandlerFunc
	EntriesHandler gin.HandlerFunc
}
