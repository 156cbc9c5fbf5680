// Package repository wraps all database access behind narrow interfaces so
// the schedule engine and the handlers never touch gorm queries directly.
package repository

import "gorm.io/gorm"

// Repository aggregates the per-entity repositories behind one handle.
type Repository struct {
	Stores      StoreRepository
	Riders      RiderRepository
	Brands      BrandRepository
	Assignments AssignmentRepository
	Runs        GenerationRunRepository
}

// New builds the gorm-backed repository set.
func New(db *gorm.DB) *Repository {
	return &Repository{
		Stores:      NewStoreRepo(db),
		Riders:      NewRiderRepo(db),
		Brands:      NewBrandRepo(db),
		Assignments: NewAssignmentRepo(db),
		Runs:        NewGenerationRunRepo(db),
	}
}
