package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router. Reads are open; every
// mutating route sits behind the admin JWT.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Siteme Shift Scheduling API",
			"version": "1.0.0",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.POST("/admin/login", h.Login)

	api := r.Group("/api")
	{
		api.GET("/stores", h.ListStores)
		api.GET("/riders", h.ListRiders)
		api.GET("/brands", h.ListBrands)
		api.GET("/schedule", h.ListSchedule)
		api.GET("/schedule/export", h.ExportSchedule)
		api.GET("/schedule/runs", h.ListGenerationRuns)
	}

	protected := r.Group("/api")
	protected.Use(h.AuthMiddleware())
	{
		protected.POST("/stores", h.CreateStore)
		protected.PUT("/stores/:id", h.UpdateStore)
		protected.DELETE("/stores/:id", h.DeleteStore)

		protected.POST("/riders", h.CreateRider)
		protected.PUT("/riders/:id", h.UpdateRider)
		protected.DELETE("/riders/:id", h.DeleteRider)

		protected.POST("/brands", h.CreateBrand)
		protected.PUT("/brands/:id", h.UpdateBrand)
		protected.DELETE("/brands/:id", h.DeleteBrand)

		protected.POST("/schedule", h.CreateAssignment)
		protected.PUT("/schedule/:id", h.UpdateAssignment)
		protected.DELETE("/schedule/:id", h.DeleteAssignment)
		protected.POST("/schedule/generate", h.GenerateSchedule)

		protected.POST("/imports/riders", h.ImportRiders)
		protected.POST("/imports/stores", h.ImportStores)
		protected.POST("/imports/brands", h.ImportBrands)
	}
}
