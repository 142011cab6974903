package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrunx/sprintly-mvp/internal/services"
)

// ImportHandler handles CSV upload endpoints
type ImportHandler struct {
	importService services.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportCompanies ingests a company CSV upload
func (h *ImportHandler) ImportCompanies(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required"})
		return
	}
	defer file.Close()

	result, err := h.importService.ImportCompanies(file)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ImportInvestors ingests an investor CSV upload
func (h *ImportHandler) ImportInvestors(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required"})
		return
	}
	defer file.Close()

	result, err := h.importService.ImportInvestors(file)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
