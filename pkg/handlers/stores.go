package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// ListStores returns all stores with pagination
func (h *Handler) ListStores(c *gin.Context) {
	skip, limit := pagination(c)
	stores, err := h.Repo.Stores.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// CreateStore creates a new store
func (h *Handler) CreateStore(c *gin.Context) {
	var input models.StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Repo.Stores.GetByCode(c.Request.Context(), input.Code); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Store code already exists"})
		return
	}

	store := models.Store{
		Code:    input.Code,
		Name:    input.Name,
		Zone:    input.Zone,
		Address: input.Address,
	}
	if err := h.Repo.Stores.Create(c.Request.Context(), &store); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create store"})
		return
	}
	c.JSON(http.StatusCreated, store)
}

// UpdateStore updates an existing store
func (h *Handler) UpdateStore(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store id"})
		return
	}

	store, err := h.Repo.Stores.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch store"})
		return
	}

	var input models.StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store.Code = input.Code
	store.Name = input.Name
	store.Zone = input.Zone
	store.Address = input.Address
	if err := h.Repo.Stores.Update(c.Request.Context(), store); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update store"})
		return
	}
	c.JSON(http.StatusOK, store)
}

// DeleteStore deletes a store
func (h *Handler) DeleteStore(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store id"})
		return
	}
	if err := h.Repo.Stores.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete store"})
		return
	}
	c.Status(http.StatusNoContent)
}
