// File: handlers/brain.go
package handlers

import (
	"net/http"
	"strconv"

	"huddle/models"
	"huddle/services/brain"

	"github.com/gin-gonic/gin"
)

// BrainHandler exposes the shared team brain: free-text capture,
// search, and recent entries.
type BrainHandler struct {
	Service brain.BrainService
}

func NewBrainHandler(svc brain.BrainService) *BrainHandler {
	return &BrainHandler{Service: svc}
}

// DumpHandler handles POST /api/brain/dump.
func (h *BrainHandler) DumpHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var req struct {
		TeamID string `json:"teamId" binding:"required"`
		Input  string `json:"input" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.Dump(c.Request.Context(), req.TeamID, memberID, req.Input)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// QueryHandler handles POST /api/brain/query.
func (h *BrainHandler) QueryHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var req struct {
		TeamID     string   `json:"teamId" binding:"required"`
		Query      string   `json:"query" binding:"required"`
		Categories []string `json:"categories,omitempty"`
		Limit      int      `json:"limit,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.Query(c.Request.Context(), req.TeamID, memberID, models.QueryRequest{
		Query:      req.Query,
		Categories: req.Categories,
		Limit:      req.Limit,
	})
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// EntriesHandler handles GET /api/brain/entries?teamId=&category=&limit=.
func (h *BrainHandler) EntriesHandler(c *gin.Context) {
	logger := getLogger(c)
	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	teamID := c.Query("teamId")
	if teamID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing teamId query parameter"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := h.Service.Entries(c.Request.Context(), teamID, memberID, c.Query("category"), limit)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}
