// Package export renders schedule windows as Excel workbooks, the format the
// operations team shares with store managers.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// SheetName is the single worksheet every schedule export carries.
const SheetName = "Programacion"

var headerRow = []interface{}{
	"Fecha", "Rider", "Sucursal", "Marca", "Turno", "Inicio", "Fin", "Manual", "Notas",
}

// ScheduleWorkbook builds an .xlsx workbook from preloaded assignment rows.
// The caller owns closing the returned file.
func ScheduleWorkbook(rows []models.ScheduleAssignment) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		f.SetCellStyle(SheetName, "A1", "I1", headerStyle)
	}
	f.SetColWidth(SheetName, "A", "A", 12)
	f.SetColWidth(SheetName, "B", "D", 24)

	for i, a := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{
			a.ShiftDate,
			riderName(a),
			storeName(a),
			brandName(a),
			a.ShiftType,
			deref(a.StartTime),
			deref(a.EndTime),
			boolLabel(a.ManualOverride),
			deref(a.Notes),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Filename names a schedule export for a window.
func Filename(startDate, endDate string) string {
	return fmt.Sprintf("programacion_%s_%s.xlsx", startDate, endDate)
}

func riderName(a models.ScheduleAssignment) string {
	if a.Rider != nil {
		return a.Rider.FullName
	}
	return ""
}

func storeName(a models.ScheduleAssignment) string {
	if a.Store != nil {
		return a.Store.Name
	}
	return ""
}

func brandName(a models.ScheduleAssignment) string {
	if a.ExternalBrand != nil {
		return a.ExternalBrand.Name
	}
	return ""
}

func boolLabel(b bool) string {
	if b {
		return "SI"
	}
	return "NO"
}

func deref(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}
