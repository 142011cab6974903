package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/services"
)

// InvestorHandler handles investor CRUD endpoints
type InvestorHandler struct {
	investorService services.InvestorService
}

// NewInvestorHandler creates a new investor handler
func NewInvestorHandler(investorService services.InvestorService) *InvestorHandler {
	return &InvestorHandler{investorService: investorService}
}

// List returns investors matching the query filters
func (h *InvestorHandler) List(c *gin.Context) {
	investors, err := h.investorService.GetAll(entityFiltersFromQuery(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investors": investors,
		"count":     len(investors),
	})
}

// Get returns one investor
func (h *InvestorHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	investor, err := h.investorService.GetByID(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// Create adds a new investor
func (h *InvestorHandler) Create(c *gin.Context) {
	var investor models.Investor
	if err := c.ShouldBindJSON(&investor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.investorService.Create(&investor); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investor": investor})
}

// Update modifies an existing investor
func (h *InvestorHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var investor models.Investor
	if err := c.ShouldBindJSON(&investor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	investor.ID = id

	if err := h.investorService.Update(&investor); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investor})
}

// Delete removes an investor and its matches
func (h *InvestorHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.investorService.Delete(id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Investor deleted"})
}
