// File: handlers/availability.go
package handlers

import (
	"net/http"

	"huddle/models"
	"huddle/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the coordination routes: slot finding,
// the relay sync callback, and booking broadcast.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// FindAvailabilityHandler handles POST /api/teams/:teamID/availability/find.
// The request blocks while members' relay agents report in, bounded by
// the poll deadline, then returns whatever slots could be computed.
func (h *AvailabilityHandler) FindAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var req models.FindSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.FindTeamSlots(c.Request.Context(), c.Param("teamID"), memberID, req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SyncCalendarHandler handles POST /api/teams/availability/sync. No
// bearer auth: the one-time sync token is the proof of identity, so
// relay agents can call back without holding member credentials.
func (h *AvailabilityHandler) SyncCalendarHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SyncReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	report, err := h.Service.SyncReport(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("calendar synced",
		zap.String("memberID", report.MemberID),
		zap.Int("busyCount", len(report.BusyTimes)))
	c.JSON(http.StatusOK, gin.H{
		"message":  "Availability synced",
		"memberId": report.MemberID,
	})
}

// BookMeetingHandler handles POST /api/teams/:teamID/book.
func (h *AvailabilityHandler) BookMeetingHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var req models.BookMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.BroadcastBooking(c.Request.Context(), c.Param("teamID"), memberID, req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
