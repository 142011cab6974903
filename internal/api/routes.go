package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrunx/sprintly-mvp/internal/auth"
	"github.com/hrunx/sprintly-mvp/internal/services"
	"github.com/hrunx/sprintly-mvp/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, svcs *services.Services, cfg *config.Config) {
	authHandler := NewAuthHandler(svcs.Auth)
	companyHandler := NewCompanyHandler(svcs.Company)
	investorHandler := NewInvestorHandler(svcs.Investor)
	matchHandler := NewMatchHandler(svcs.Matching)
	importHandler := NewImportHandler(svcs.Import)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/logout", authHandler.Logout)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	{
		// Company endpoints
		protected.GET("/companies", companyHandler.List)
		protected.GET("/companies/:id", companyHandler.Get)
		protected.POST("/companies", companyHandler.Create)
		protected.PUT("/companies/:id", companyHandler.Update)
		protected.DELETE("/companies/:id", companyHandler.Delete)

		// Investor endpoints
		protected.GET("/investors", investorHandler.List)
		protected.GET("/investors/:id", investorHandler.Get)
		protected.POST("/investors", investorHandler.Create)
		protected.PUT("/investors/:id", investorHandler.Update)
		protected.DELETE("/investors/:id", investorHandler.Delete)

		// Match endpoints
		protected.GET("/matches", matchHandler.List)
		protected.POST("/matches/generate", matchHandler.GenerateAll)
		protected.POST("/matches/companies/:id/generate", matchHandler.GenerateForCompany)
		protected.POST("/matches/investors/:id/generate", matchHandler.GenerateForInvestor)
		protected.GET("/matches/companies/:id", matchHandler.ListForCompany)
		protected.GET("/matches/investors/:id", matchHandler.ListForInvestor)
		protected.GET("/matches/preview/:company_id/:investor_id", matchHandler.Preview)
		protected.GET("/matches/pair/:company_id/:investor_id", matchHandler.GetPair)
		protected.PUT("/matches/status/:id", matchHandler.UpdateStatus)

		// Weight configuration
		protected.GET("/matches/weights", matchHandler.GetWeights)
		protected.PUT("/matches/weights", auth.AdminOnly(), matchHandler.UpdateWeights)

		// CSV import endpoints
		protected.POST("/import/companies", importHandler.ImportCompanies)
		protected.POST("/import/investors", importHandler.ImportInvestors)
	}
}
