package models

import "time"

// Shift type labels as they appear in the stored schedule and on exports.
const (
	ShiftAM        = "AM"
	ShiftPM        = "PM"
	ShiftAMPM      = "AM Y PM"
	ShiftRest      = "DESCANSO"
	ShiftExternal  = "EXTERNO"
	ShiftAvailable = "DISPONIBLE"
)

// DateLayout is the wire and storage format for shift dates. ISO dates
// compare correctly as strings, so window range queries need no date column.
const DateLayout = "2006-01-02"

// Store represents a Panpaya branch
type Store struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Code    string  `gorm:"unique;not null" json:"code"`
	Name    string  `gorm:"not null" json:"name"`
	Zone    *string `json:"zone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Rider represents a delivery rider (domiciliario)
type Rider struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	FullName       string  `gorm:"not null" json:"full_name"`
	Identification *string `json:"identification,omitempty"`
	Active         bool    `gorm:"default:true;not null" json:"active"`
	RiderType      string  `gorm:"not null" json:"rider_type"`
	StoreID        *uint   `json:"store_id,omitempty"`
	Store          *Store  `json:"store,omitempty"`
	Observation    *string `json:"observation,omitempty"`
}

// ExternalBrand represents an external brand account covered by the shared
// TC/FDS rider pool
type ExternalBrand struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// ScheduleAssignment is one rider/date roster row. A row references either a
// store shift, an external brand, or neither (rest/available); uniqueness per
// (rider, date) is not enforced here.
type ScheduleAssignment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	RiderID         uint           `gorm:"not null" json:"rider_id"`
	Rider           *Rider         `json:"rider,omitempty"`
	StoreID         *uint          `json:"store_id,omitempty"`
	Store           *Store         `json:"store,omitempty"`
	ExternalBrandID *uint          `json:"external_brand_id,omitempty"`
	ExternalBrand   *ExternalBrand `json:"external_brand,omitempty"`
	ShiftDate       string         `gorm:"index;not null" json:"shift_date"`
	ShiftType       string         `gorm:"not null" json:"shift_type"`
	StartTime       *string        `json:"start_time,omitempty"`
	EndTime         *string        `json:"end_time,omitempty"`
	ManualOverride  bool           `gorm:"default:false;not null" json:"manual_override"`
	Notes           *string        `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// GenerationRun records one call to the schedule generator
type GenerationRun struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StartDate   string    `gorm:"not null" json:"start_date"`
	Days        int       `gorm:"not null" json:"days"`
	RowsCreated int       `json:"rows_created"`
	RowsDeleted int       `json:"rows_deleted"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateRequest is the body of POST /api/schedule/generate
type GenerateRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	Days      int    `json:"days" binding:"required,min=1,max=31"`
}

// StoreInput is the create/update body for stores
type StoreInput struct {
	Code    string  `json:"code" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Zone    *string `json:"zone"`
	Address *string `json:"address"`
}

// RiderInput is the create/update body for riders
type RiderInput struct {
	FullName       string  `json:"full_name" binding:"required"`
	Identification *string `json:"identification"`
	Active         *bool   `json:"active"`
	RiderType      string  `json:"rider_type" binding:"required"`
	StoreID        *uint   `json:"store_id"`
	Observation    *string `json:"observation"`
}

// BrandInput is the create/update body for external brands
type BrandInput struct {
	Name string `json:"name" binding:"required"`
}

// AssignmentInput is the create/update body for manual schedule rows
type AssignmentInput struct {
	RiderID         uint    `json:"rider_id" binding:"required"`
	StoreID         *uint   `json:"store_id"`
	ExternalBrandID *uint   `json:"external_brand_id"`
	ShiftDate       string  `json:"shift_date" binding:"required"`
	ShiftType       string  `json:"shift_type" binding:"required"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	ManualOverride  *bool   `json:"manual_override"`
	Notes           *string `json:"notes"`
}
