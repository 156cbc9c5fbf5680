package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// ListRiders returns riders with pagination and an optional active filter
func (h *Handler) ListRiders(c *gin.Context) {
	skip, limit := pagination(c)
	activeOnly := c.Query("active_only") == "true"
	riders, err := h.Repo.Riders.List(c.Request.Context(), skip, limit, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list riders"})
		return
	}
	c.JSON(http.StatusOK, riders)
}

// CreateRider creates a new rider
func (h *Handler) CreateRider(c *gin.Context) {
	var input models.RiderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	rider := models.Rider{
		FullName:       input.FullName,
		Identification: input.Identification,
		Active:         active,
		RiderType:      input.RiderType,
		StoreID:        input.StoreID,
		Observation:    input.Observation,
	}
	if err := h.Repo.Riders.Create(c.Request.Context(), &rider); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create rider"})
		return
	}
	c.JSON(http.StatusCreated, rider)
}

// UpdateRider updates an existing rider
func (h *Handler) UpdateRider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rider id"})
		return
	}

	rider, err := h.Repo.Riders.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch rider"})
		return
	}

	var input models.RiderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rider.FullName = input.FullName
	rider.Identification = input.Identification
	rider.RiderType = input.RiderType
	rider.StoreID = input.StoreID
	rider.Observation = input.Observation
	if input.Active != nil {
		rider.Active = *input.Active
	}
	rider.Store = nil
	if err := h.Repo.Riders.Update(c.Request.Context(), rider); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update rider"})
		return
	}
	c.JSON(http.StatusOK, rider)
}

// DeleteRider deletes a rider
func (h *Handler) DeleteRider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rider id"})
		return
	}
	if err := h.Repo.Riders.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete rider"})
		return
	}
	c.Status(http.StatusNoContent)
}
