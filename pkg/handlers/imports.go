package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

const maxUploadSize = 5 * 1024 * 1024

var allowedExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// importSheet opens the uploaded workbook and returns the rows of its first
// sheet. Responds with the error itself when the upload is unusable.
func importSheet(c *gin.Context) ([][]string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, false
	}
	if !validExtension(fileHeader) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file format"})
		return nil, false
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not open upload"})
		return nil, false
	}
	defer file.Close()

	wb, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse workbook"})
		return nil, false
	}
	defer wb.Close()

	rows, err := wb.GetRows(wb.GetSheetName(0))
	if err != nil || len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Workbook has no rows"})
		return nil, false
	}
	return rows, true
}

func validExtension(fh *multipart.FileHeader) bool {
	name := strings.ToLower(fh.Filename)
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// headerIndex maps normalized header labels to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, cell := range header {
		idx[strings.ToUpper(strings.TrimSpace(cell))] = i
	}
	return idx
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func columnOf(idx map[string]int, name string) int {
	if i, ok := idx[name]; ok {
		return i
	}
	return -1
}

// ImportRiders upserts riders from an .xlsx with NOMBRE and TIPO columns,
// optionally SUCURSAL (store code), CC and OBSERVACION. Riders are matched by
// full name.
func (h *Handler) ImportRiders(c *gin.Context) {
	rows, ok := importSheet(c)
	if !ok {
		return
	}
	idx := headerIndex(rows[0])
	for _, required := range []string{"NOMBRE", "TIPO"} {
		if columnOf(idx, required) < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing column " + required})
			return
		}
	}

	ctx := c.Request.Context()
	created, updated := 0, 0
	for _, row := range rows[1:] {
		fullName := cellAt(row, columnOf(idx, "NOMBRE"))
		riderType := cellAt(row, columnOf(idx, "TIPO"))
		if fullName == "" || riderType == "" {
			continue
		}

		var storeID *uint
		if code := cellAt(row, columnOf(idx, "SUCURSAL")); code != "" {
			if store, err := h.Repo.Stores.GetByCode(ctx, code); err == nil {
				storeID = &store.ID
			}
		}

		rider, err := h.Repo.Riders.GetByFullName(ctx, fullName)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not import riders"})
			return
		}

		identification := optionalCell(row, columnOf(idx, "CC"))
		observation := optionalCell(row, columnOf(idx, "OBSERVACION"))

		if rider != nil {
			rider.RiderType = riderType
			rider.Active = true
			rider.StoreID = storeID
			rider.Identification = identification
			rider.Observation = observation
			rider.Store = nil
			if err := h.Repo.Riders.Update(ctx, rider); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not import riders"})
				return
			}
			updated++
			continue
		}

		newRider := models.Rider{
			FullName:       fullName,
			RiderType:      riderType,
			Active:         true,
			StoreID:        storeID,
			Identification: identification,
			Observation:    observation,
		}
		if err := h.Repo.Riders.Create(ctx, &newRider); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not import riders"})
			return
		}
		created++
	}
	c.JSON(http.StatusOK, gin.H{"created": created, "updated": updated})
}

// ImportStores upserts stores from an .xlsx with CODIGO and NOMBRE columns,
// optionally ZONA and DIRECCION. Stores are matched by code.
func (h *Handler) ImportStores(c *gin.Context) {
	rows, ok := importSheet(c)
	if !ok {
		return
	}
	idx := headerIndex(rows[0])
	for _, required := range []string{"CODIGO", "NOMBRE"} {
		if columnOf(idx, required) < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing column " + required})
			return
		}
	}

	ctx := c.Request.Context()
	created, updated := 0, 0
	for _, row := range rows[1:] {
		code := cellAt(row, columnOf(idx, "CODIGO"))
		name := cellAt(row, columnOf(idx, "NOMBRE"))
		if code == "" || name == "" {
			continue
		}

		zone := optionalCell(row, columnOf(idx, "ZONA"))
		address := optionalCell(row, columnOf(idx, "DIRECCION"))

		store, err := h.Repo.Stores.GetByCode(ctx, code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not import stores"})
			return
		}

		if store != nil {
			store.Name = name
			store.Zone = zone
			store.Address = address
			if err := h.Repo.Stores.Update(ctx, store); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not import stores"})
				return
			}
			updated++
			continue
		}

		newStore := models.Store{Code: code, Name: name, Zone: zone, Address: address}
		if err := h.Repo.Stores.Create(ctx, &newStore); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not import stores"})
			return
		}
		created++
	}
	c.JSON(http.StatusOK, gin.H{"created": created, "updated": updated})
}

// ImportBrands inserts external brands from an .xlsx with a MARCA column.
// Existing names are counted but left unchanged.
func (h *Handler) ImportBrands(c *gin.Context) {
	rows, ok := importSheet(c)
	if !ok {
		return
	}
	idx := headerIndex(rows[0])
	if columnOf(idx, "MARCA") < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing column MARCA"})
		return
	}

	ctx := c.Request.Context()
	created, updated := 0, 0
	for _, row := range rows[1:] {
		name := cellAt(row, columnOf(idx, "MARCA"))
		if name == "" {
			continue
		}

		_, err := h.Repo.Brands.GetByName(ctx, name)
		if err == nil {
			updated++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not import brands"})
			return
		}

		brand := models.ExternalBrand{Name: name}
		if err := h.Repo.Brands.Create(ctx, &brand); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not import brands"})
			return
		}
		created++
	}
	c.JSON(http.StatusOK, gin.H{"created": created, "updated": updated})
}

func optionalCell(row []string, i int) *string {
	v := cellAt(row, i)
	if v == "" {
		return nil
	}
	return &v
}
