package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/export"
	"github.com/panpaya/siteme-api-go/pkg/models"
	"github.com/panpaya/siteme-api-go/pkg/scheduler"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ListSchedule returns every assignment in [start_date, end_date], both
// inclusive, ordered by date
func (h *Handler) ListSchedule(c *gin.Context) {
	startDate, endDate, ok := windowQuery(c)
	if !ok {
		return
	}
	rows, err := h.Repo.Assignments.ListWindow(c.Request.Context(), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list schedule"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateAssignment creates a schedule row directly. Rows created here are
// manual by default and survive regeneration.
func (h *Handler) CreateAssignment(c *gin.Context) {
	var input models.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := parseDate(input.ShiftDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift_date must be YYYY-MM-DD"})
		return
	}

	manual := true
	if input.ManualOverride != nil {
		manual = *input.ManualOverride
	}
	row := models.ScheduleAssignment{
		RiderID:         input.RiderID,
		StoreID:         input.StoreID,
		ExternalBrandID: input.ExternalBrandID,
		ShiftDate:       input.ShiftDate,
		ShiftType:       input.ShiftType,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		ManualOverride:  manual,
		Notes:           input.Notes,
	}
	if err := h.Repo.Assignments.Create(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create assignment"})
		return
	}
	c.JSON(http.StatusCreated, row)
}

// UpdateAssignment updates a schedule row
func (h *Handler) UpdateAssignment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment id"})
		return
	}

	row, err := h.Repo.Assignments.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch assignment"})
		return
	}

	var input models.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := parseDate(input.ShiftDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift_date must be YYYY-MM-DD"})
		return
	}

	row.RiderID = input.RiderID
	row.StoreID = input.StoreID
	row.ExternalBrandID = input.ExternalBrandID
	row.ShiftDate = input.ShiftDate
	row.ShiftType = input.ShiftType
	row.StartTime = input.StartTime
	row.EndTime = input.EndTime
	row.Notes = input.Notes
	if input.ManualOverride != nil {
		row.ManualOverride = *input.ManualOverride
	}
	row.Rider, row.Store, row.ExternalBrand = nil, nil, nil
	if err := h.Repo.Assignments.Update(c.Request.Context(), row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update assignment"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteAssignment deletes a schedule row
func (h *Handler) DeleteAssignment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment id"})
		return
	}
	if err := h.Repo.Assignments.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete assignment"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateSchedule recomputes the roster for a window. All non-manual rows in
// the window are replaced; manual rows are read as constraints and kept.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	h.genMu.Lock()
	defer h.genMu.Unlock()

	began := time.Now()
	ctx := c.Request.Context()

	riders, err := h.Repo.Riders.ListActive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load riders"})
		return
	}
	// No active riders: nothing to compute and storage stays untouched.
	if len(riders) == 0 {
		c.JSON(http.StatusOK, []models.ScheduleAssignment{})
		return
	}

	stores, err := h.Repo.Stores.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load stores"})
		return
	}
	brands, err := h.Repo.Brands.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load brands"})
		return
	}

	startDate := start.Format(models.DateLayout)
	endExclusive := start.AddDate(0, 0, req.Days).Format(models.DateLayout)
	manual, err := h.Repo.Assignments.ListManualWindow(ctx, startDate, endExclusive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load manual assignments"})
		return
	}

	rows := scheduler.Generate(scheduler.Input{
		Riders: riders,
		Stores: stores,
		Brands: brands,
		Manual: manual,
	}, start, req.Days, h.Log)

	deleted, err := h.Repo.Assignments.ReplaceWindow(ctx, startDate, endExclusive, rows)
	if err != nil {
		h.Log.Error("schedule reconciliation failed",
			zap.String("start_date", startDate),
			zap.Int("days", req.Days),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store generated schedule"})
		return
	}

	run := models.GenerationRun{
		StartDate:   startDate,
		Days:        req.Days,
		RowsCreated: len(rows),
		RowsDeleted: int(deleted),
		DurationMs:  time.Since(began).Milliseconds(),
	}
	if err := h.Repo.Runs.Create(ctx, &run); err != nil {
		h.Log.Warn("could not record generation run", zap.Error(err))
	}
	h.Log.Info("schedule generated",
		zap.String("start_date", startDate),
		zap.Int("days", req.Days),
		zap.Int("rows_created", len(rows)),
		zap.Int64("rows_deleted", deleted))

	endInclusive := start.AddDate(0, 0, req.Days-1).Format(models.DateLayout)
	out, err := h.Repo.Assignments.ListWindow(ctx, startDate, endInclusive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read back schedule"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ExportSchedule streams a window as an .xlsx attachment
func (h *Handler) ExportSchedule(c *gin.Context) {
	startDate, endDate, ok := windowQuery(c)
	if !ok {
		return
	}
	rows, err := h.Repo.Assignments.ListWindow(c.Request.Context(), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list schedule"})
		return
	}

	f, err := export.ScheduleWorkbook(rows)
	if err != nil {
		h.Log.Error("schedule export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build export"})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not write export"})
		return
	}

	filename := export.Filename(startDate, endDate)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ListGenerationRuns returns the recent generation audit trail
func (h *Handler) ListGenerationRuns(c *gin.Context) {
	runs, err := h.Repo.Runs.ListRecent(c.Request.Context(), 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// windowQuery reads and validates the start_date/end_date query params.
func windowQuery(c *gin.Context) (string, string, bool) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if _, err := parseDate(startDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return "", "", false
	}
	if _, err := parseDate(endDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return "", "", false
	}
	return startDate, endDate, true
}
