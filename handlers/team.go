// File: handlers/team.go
package handlers

import (
	"fmt"
	"net/http"

	"huddle/models"
	"huddle/services/team"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TeamHandler exposes member registration and team membership routes.
type TeamHandler struct {
	Service team.TeamService
}

func NewTeamHandler(svc team.TeamService) *TeamHandler {
	return &TeamHandler{Service: svc}
}

// RegisterMemberHandler handles POST /api/members/register. The token
// in the response is shown exactly once; only its hash is stored.
func (h *TeamHandler) RegisterMemberHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.RegisterMember(req)
	if err != nil {
		logger.Error("member registration failed", zap.Error(err))
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"memberId": resp.Member.ID,
		"name":     resp.Member.Name,
		"apiKey":   resp.Token,
		"message":  "Store this API key; it authenticates your relay agent and cannot be shown again",
	})
}

// CreateTeamHandler handles POST /api/teams.
func (h *TeamHandler) CreateTeamHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Service.CreateTeam(c.Request.Context(), memberID, req.Name)
	if err != nil {
		logger.Error("team creation failed", zap.Error(err))
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"teamId":     created.ID,
		"name":       created.Name,
		"inviteCode": created.InviteCode,
		"message":    fmt.Sprintf("Share invite code %s with your team", created.InviteCode),
	})
}

// PreviewTeamHandler handles POST /api/teams/join: it resolves an
// invite code to the team behind it without joining, so would-be
// members can confirm the code before registering.
func (h *TeamHandler) PreviewTeamHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	found, err := h.Service.PreviewTeam(c.Request.Context(), req.InviteCode)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teamId":     found.ID,
		"teamName":   found.Name,
		"inviteCode": found.InviteCode,
	})
}

// JoinTeamHandler handles POST /api/teams/join-with-auth.
func (h *TeamHandler) JoinTeamHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var req models.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	joined, err := h.Service.JoinTeam(c.Request.Context(), memberID, req.InviteCode)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teamId":   joined.ID,
		"teamName": joined.Name,
		"message":  fmt.Sprintf("Joined %s", joined.Name),
	})
}

// MyTeamsHandler handles GET /api/teams/me.
func (h *TeamHandler) MyTeamsHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	teams, err := h.Service.MyTeams(c.Request.Context(), memberID)
	if err != nil {
		logger.Error("listing teams failed", zap.Error(err))
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// TeamDetailHandler handles GET /api/teams/:teamID.
func (h *TeamHandler) TeamDetailHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	detail, err := h.Service.TeamDetail(c.Request.Context(), c.Param("teamID"), memberID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListMembersHandler handles GET /api/teams/:teamID/members. The
// roster carries connection status only; keys never leave the server.
func (h *TeamHandler) ListMembersHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	detail, err := h.Service.TeamDetail(c.Request.Context(), c.Param("teamID"), memberID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": detail.Members})
}

// UpdateRelayKeyHandler handles PUT /api/teams/:teamID/members/me/relay-key.
func (h *TeamHandler) UpdateRelayKeyHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var req models.UpdateRelayKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.UpdateRelayKey(c.Request.Context(), c.Param("teamID"), memberID, req.RelayKey); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Relay API key updated. You can now receive calendar sync requests.",
	})
}
