package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
	"github.com/hrunx/sprintly-mvp/internal/services"
)

// CompanyHandler handles company CRUD endpoints
type CompanyHandler struct {
	companyService services.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func entityFiltersFromQuery(c *gin.Context) repository.EntityFilters {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return repository.EntityFilters{
		Sector:    c.Query("sector"),
		Stage:     c.Query("stage"),
		Geography: c.Query("geography"),
		Search:    c.Query("search"),
		Limit:     limit,
		Offset:    offset,
	}
}

// List returns companies matching the query filters
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyService.GetAll(entityFiltersFromQuery(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"count":     len(companies),
	})
}

// Get returns one company
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// Create adds a new company
func (h *CompanyHandler) Create(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.companyService.Create(&company); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// Update modifies an existing company
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	company.ID = id

	if err := h.companyService.Update(&company); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

// Delete removes a company and its matches
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.companyService.Delete(id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}
