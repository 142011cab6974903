package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrunx/sprintly-mvp/internal/matching"
	"github.com/hrunx/sprintly-mvp/internal/repository"
	"github.com/hrunx/sprintly-mvp/internal/services"
)

// MatchHandler handles match generation and retrieval endpoints
type MatchHandler struct {
	matchingService services.MatchingService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchingService services.MatchingService) *MatchHandler {
	return &MatchHandler{matchingService: matchingService}
}

// GenerateAll regenerates matches for every company
func (h *MatchHandler) GenerateAll(c *gin.Context) {
	stats, err := h.matchingService.GenerateAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now(),
	})
}

// GenerateForCompany regenerates matches for one company
func (h *MatchHandler) GenerateForCompany(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.matchingService.GenerateForCompany(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GenerateForInvestor regenerates matches for one investor
func (h *MatchHandler) GenerateForInvestor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.matchingService.GenerateForInvestor(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Preview scores a single pair without persisting it
func (h *MatchHandler) Preview(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "company_id")
	if !ok {
		return
	}
	investorID, ok := parseUUIDParam(c, "investor_id")
	if !ok {
		return
	}

	result, err := h.matchingService.PreviewMatch(companyID, investorID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": result})
}

// GetPair returns the stored match for one company/investor pair
func (h *MatchHandler) GetPair(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "company_id")
	if !ok {
		return
	}
	investorID, ok := parseUUIDParam(c, "investor_id")
	if !ok {
		return
	}

	match, err := h.matchingService.GetPair(companyID, investorID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}

// List returns stored matches with optional filters
func (h *MatchHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filters := repository.MatchFilters{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("min_score"); raw != "" {
		if minScore, err := strconv.Atoi(raw); err == nil {
			filters.MinScore = &minScore
		}
	}

	matches, err := h.matchingService.List(filters)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

// ListForCompany returns stored matches for one company, best first
func (h *MatchHandler) ListForCompany(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	matches, err := h.matchingService.ListForCompany(id, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

// ListForInvestor returns stored matches for one investor, best first
func (h *MatchHandler) ListForInvestor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	matches, err := h.matchingService.ListForInvestor(id, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateStatus moves a match through the pipeline states
func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.matchingService.UpdateStatus(id, req.Status, req.Notes); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match updated"})
}

// GetWeights returns the active factor weights
func (h *MatchHandler) GetWeights(c *gin.Context) {
	weights, err := h.matchingService.GetWeights()
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weights": weights})
}

// UpdateWeights replaces the active factor weights (Admin only)
func (h *MatchHandler) UpdateWeights(c *gin.Context) {
	var weights matching.Weights
	if err := c.ShouldBindJSON(&weights); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.matchingService.UpdateWeights(weights); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weights": weights})
}
