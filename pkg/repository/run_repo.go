package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// GenerationRunRepository records and lists schedule generation runs.
type GenerationRunRepository interface {
	Create(ctx context.Context, run *models.GenerationRun) error
	ListRecent(ctx context.Context, limit int) ([]models.GenerationRun, error)
}

type generationRunRepo struct {
	db *gorm.DB
}

func NewGenerationRunRepo(db *gorm.DB) GenerationRunRepository {
	return &generationRunRepo{db: db}
}

func (r *generationRunRepo) Create(ctx context.Context, run *models.GenerationRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *generationRunRepo) ListRecent(ctx context.Context, limit int) ([]models.GenerationRun, error) {
	var runs []models.GenerationRun
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}
