package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/panpaya/siteme-api-go/pkg/handlers"
	"github.com/panpaya/siteme-api-go/pkg/models"
)

// setupServer wires the handlers onto a bare router over an in-memory
// database. Auth middleware stays out of the way; token logic has its own
// tests in pkg/auth.
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Store{},
		&models.Rider{},
		&models.ExternalBrand{},
		&models.ScheduleAssignment{},
		&models.GenerationRun{},
	))

	h := handlers.New(db, zap.NewNop())
	r := gin.New()
	r.GET("/api/schedule", h.ListSchedule)
	r.POST("/api/schedule/generate", h.GenerateSchedule)
	r.GET("/api/schedule/export", h.ExportSchedule)
	r.GET("/api/schedule/runs", h.ListGenerationRuns)
	r.POST("/api/imports/riders", h.ImportRiders)
	r.POST("/api/imports/stores", h.ImportStores)
	r.POST("/api/imports/brands", h.ImportBrands)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedSchedulingData(t *testing.T, db *gorm.DB) {
	t.Helper()
	store := models.Store{Code: "S1", Name: "Centro"}
	require.NoError(t, db.Create(&store).Error)
	riders := []models.Rider{
		{FullName: "Ana", Active: true, RiderType: "PANPAYA", StoreID: &store.ID},
		{FullName: "Bruno", Active: true, RiderType: "PANPAYA", StoreID: &store.ID},
		{FullName: "Carla", Active: true, RiderType: "TC"},
	}
	for i := range riders {
		require.NoError(t, db.Create(&riders[i]).Error)
	}
	require.NoError(t, db.Create(&models.ExternalBrand{Name: "BrandX"}).Error)
}

type rowKey struct {
	RiderID   uint
	ShiftDate string
	ShiftType string
}

func nonManualRows(t *testing.T, db *gorm.DB) map[rowKey]int {
	t.Helper()
	var rows []models.ScheduleAssignment
	require.NoError(t, db.Where("manual_override = ?", false).Find(&rows).Error)
	set := make(map[rowKey]int)
	for _, a := range rows {
		set[rowKey{a.RiderID, a.ShiftDate, a.ShiftType}]++
	}
	return set
}

func TestGenerateScheduleEndToEnd(t *testing.T) {
	r, db := setupServer(t)
	seedSchedulingData(t, db)

	// A manual row inside the window, created by hand before generation.
	manual := models.ScheduleAssignment{
		RiderID: 1, ShiftDate: "2026-01-06", ShiftType: models.ShiftRest, ManualOverride: true,
	}
	require.NoError(t, db.Create(&manual).Error)

	w := postJSON(t, r, "/api/schedule/generate", models.GenerateRequest{
		StartDate: "2026-01-05", Days: 7,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out []models.ScheduleAssignment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out)

	// The response includes the manual row and is date-ascending.
	foundManual := false
	for i := 1; i < len(out); i++ {
		require.LessOrEqual(t, out[i-1].ShiftDate, out[i].ShiftDate)
	}
	for _, a := range out {
		if a.ManualOverride {
			foundManual = true
			require.Equal(t, manual.ID, a.ID)
		}
	}
	require.True(t, foundManual, "manual rows belong to the returned window")

	// A run lands in the audit log.
	var runs []models.GenerationRun
	require.NoError(t, db.Find(&runs).Error)
	require.Len(t, runs, 1)
	require.Equal(t, "2026-01-05", runs[0].StartDate)
	require.Equal(t, 7, runs[0].Days)

	firstRows := nonManualRows(t, db)

	// Regenerating the same window with unchanged inputs is idempotent for
	// non-manual rows and never touches the manual one.
	w = postJSON(t, r, "/api/schedule/generate", models.GenerateRequest{
		StartDate: "2026-01-05", Days: 7,
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, firstRows, nonManualRows(t, db))
	var kept models.ScheduleAssignment
	require.NoError(t, db.First(&kept, manual.ID).Error)
	require.True(t, kept.ManualOverride)
	require.Equal(t, models.ShiftRest, kept.ShiftType)
}

func TestGenerateScheduleNoActiveRiders(t *testing.T) {
	r, db := setupServer(t)

	// Pre-existing rows must not be deleted when there is nothing to compute.
	inactive := models.Rider{FullName: "Viejo", Active: false, RiderType: "PANPAYA"}
	require.NoError(t, db.Create(&inactive).Error)
	row := models.ScheduleAssignment{RiderID: inactive.ID, ShiftDate: "2026-01-06", ShiftType: models.ShiftAM}
	require.NoError(t, db.Create(&row).Error)

	w := postJSON(t, r, "/api/schedule/generate", models.GenerateRequest{
		StartDate: "2026-01-05", Days: 7,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.ScheduleAssignment{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "storage must stay untouched")
}

func TestGenerateScheduleValidation(t *testing.T) {
	r, _ := setupServer(t)

	w := postJSON(t, r, "/api/schedule/generate", gin.H{"start_date": "2026-01-05", "days": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/schedule/generate", gin.H{"start_date": "2026-01-05", "days": 32})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/schedule/generate", gin.H{"start_date": "05/01/2026", "days": 7})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListScheduleValidation(t *testing.T) {
	r, _ := setupServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/schedule?start_date=bad&end_date=2026-01-31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func uploadWorkbook(t *testing.T, r *gin.Engine, path string, header []interface{}, rows [][]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	content, err := f.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "import.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportRidersUpsert(t *testing.T) {
	r, db := setupServer(t)

	store := models.Store{Code: "S1", Name: "Centro"}
	require.NoError(t, db.Create(&store).Error)
	existing := models.Rider{FullName: "Ana", Active: false, RiderType: "FDS"}
	require.NoError(t, db.Create(&existing).Error)

	w := uploadWorkbook(t, r, "/api/imports/riders",
		[]interface{}{"NOMBRE", "TIPO", "SUCURSAL", "OBSERVACION"},
		[][]interface{}{
			{"Ana", "PANPAYA", "S1", ""},
			{"Bruno", "TC", "", "Vacaciones"},
			{"", "TC", "", ""},
		})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.JSONEq(t, `{"created": 1, "updated": 1}`, w.Body.String())

	var ana models.Rider
	require.NoError(t, db.Where("full_name = ?", "Ana").First(&ana).Error)
	require.Equal(t, "PANPAYA", ana.RiderType)
	require.True(t, ana.Active, "imported riders are reactivated")
	require.NotNil(t, ana.StoreID)
	require.Equal(t, store.ID, *ana.StoreID)

	var bruno models.Rider
	require.NoError(t, db.Where("full_name = ?", "Bruno").First(&bruno).Error)
	require.NotNil(t, bruno.Observation)
	require.Equal(t, "Vacaciones", *bruno.Observation)
}

func TestImportStoresMissingColumn(t *testing.T) {
	r, _ := setupServer(t)
	w := uploadWorkbook(t, r, "/api/imports/stores",
		[]interface{}{"CODIGO"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "NOMBRE")
}

func TestImportBrandsSkipsDuplicates(t *testing.T) {
	r, db := setupServer(t)
	require.NoError(t, db.Create(&models.ExternalBrand{Name: "BrandX"}).Error)

	w := uploadWorkbook(t, r, "/api/imports/brands",
		[]interface{}{"MARCA"},
		[][]interface{}{{"BrandX"}, {"BrandY"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"created": 1, "updated": 1}`, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.ExternalBrand{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestExportScheduleAttachment(t *testing.T) {
	r, db := setupServer(t)
	seedSchedulingData(t, db)
	row := models.ScheduleAssignment{RiderID: 1, ShiftDate: "2026-01-05", ShiftType: models.ShiftAM}
	require.NoError(t, db.Create(&row).Error)

	req := httptest.NewRequest(http.MethodGet,
		"/api/schedule/export?start_date=2026-01-05&end_date=2026-01-11", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"),
		fmt.Sprintf("programacion_%s_%s.xlsx", "2026-01-05", "2026-01-11"))

	wb, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Programacion")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Fecha", rows[0][0])
	require.Equal(t, "2026-01-05", rows[1][0])
	require.Equal(t, "Ana", rows[1][1])
}
