package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// ListBrands returns all external brands ordered by name
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.Repo.Brands.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list brands"})
		return
	}
	c.JSON(http.StatusOK, brands)
}

// CreateBrand creates a new external brand
func (h *Handler) CreateBrand(c *gin.Context) {
	var input models.BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Repo.Brands.GetByName(c.Request.Context(), input.Name); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand already exists"})
		return
	}

	brand := models.ExternalBrand{Name: input.Name}
	if err := h.Repo.Brands.Create(c.Request.Context(), &brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create brand"})
		return
	}
	c.JSON(http.StatusCreated, brand)
}

// UpdateBrand updates an external brand
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand id"})
		return
	}

	var input models.BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if existing, err := h.Repo.Brands.GetByName(c.Request.Context(), input.Name); err == nil && existing.ID != uint(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand already exists"})
		return
	}

	brand, err := h.Repo.Brands.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch brand"})
		return
	}

	brand.Name = input.Name
	if err := h.Repo.Brands.Update(c.Request.Context(), brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update brand"})
		return
	}
	c.JSON(http.StatusOK, brand)
}

// DeleteBrand deletes an external brand
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand id"})
		return
	}
	if err := h.Repo.Brands.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete brand"})
		return
	}
	c.Status(http.StatusNoContent)
}
