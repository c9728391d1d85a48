package handlers

import (
	"errors"
	"net/http"

	"huddle/services/availability"
	"huddle/services/brain"
	"huddle/services/team"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requireMemberID pulls the authenticated member's ID from the Gin
// context. It is set by the auth middleware; a miss means the route
// was wired without it.
func requireMemberID(c *gin.Context) (string, bool) {
	v, exists := c.Get("memberID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

// respondServiceError maps typed service errors onto HTTP statuses.
// Anything unrecognized becomes an opaque 500 so wrapped internal
// detail never reaches clients.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		teamNotFound  *team.TeamNotFoundError
		teamNotMember *team.NotAMemberError
		badInvite     *team.InvalidInviteCodeError
		alreadyMember *team.AlreadyMemberError
		emailTaken    *team.EmailTakenError

		availNotFound  *availability.TeamNotFoundError
		availNotMember *availability.NotAMemberError
		badToken       *availability.InvalidTokenError
		badRange       *availability.InvalidRangeError
		badPayload     *availability.InvalidPayloadError

		brainNotFound  *brain.TeamNotFoundError
		brainNotMember *brain.NotAMemberError
		classification *brain.ClassificationError
	)

	switch {
	case errors.As(err, &teamNotFound),
		errors.As(err, &availNotFound),
		errors.As(err, &brainNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
	case errors.As(err, &badInvite):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid invite code"})
	case errors.As(err, &teamNotMember),
		errors.As(err, &availNotMember),
		errors.As(err, &brainNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this team"})
	case errors.As(err, &alreadyMember):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already a member or join failed"})
	case errors.As(err, &emailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &badToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired sync token"})
	case errors.As(err, &badRange), errors.As(err, &badPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &classification):
		logger.Error("classification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
