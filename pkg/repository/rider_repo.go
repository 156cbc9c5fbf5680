package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// RiderRepository is the data-access surface for riders.
type RiderRepository interface {
	List(ctx context.Context, skip, limit int, activeOnly bool) ([]models.Rider, error)
	// ListActive returns every active rider ordered by ID, the snapshot the
	// schedule engine generates from.
	ListActive(ctx context.Context) ([]models.Rider, error)
	Get(ctx context.Context, id uint) (*models.Rider, error)
	GetByFullName(ctx context.Context, fullName string) (*models.Rider, error)
	Create(ctx context.Context, rider *models.Rider) error
	Update(ctx context.Context, rider *models.Rider) error
	Delete(ctx context.Context, id uint) error
}

type riderRepo struct {
	db *gorm.DB
}

func NewRiderRepo(db *gorm.DB) RiderRepository {
	return &riderRepo{db: db}
}

func (r *riderRepo) List(ctx context.Context, skip, limit int, activeOnly bool) ([]models.Rider, error) {
	query := r.db.WithContext(ctx).Preload("Store").Order("id")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var riders []models.Rider
	err := query.Offset(skip).Limit(limit).Find(&riders).Error
	return riders, err
}

func (r *riderRepo) ListActive(ctx context.Context) ([]models.Rider, error) {
	var riders []models.Rider
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&riders).Error
	return riders, err
}

func (r *riderRepo) Get(ctx context.Context, id uint) (*models.Rider, error) {
	var rider models.Rider
	if err := r.db.WithContext(ctx).Preload("Store").First(&rider, id).Error; err != nil {
		return nil, err
	}
	return &rider, nil
}

func (r *riderRepo) GetByFullName(ctx context.Context, fullName string) (*models.Rider, error) {
	var rider models.Rider
	if err := r.db.WithContext(ctx).Where("full_name = ?", fullName).First(&rider).Error; err != nil {
		return nil, err
	}
	return &rider, nil
}

func (r *riderRepo) Create(ctx context.Context, rider *models.Rider) error {
	return r.db.WithContext(ctx).Create(rider).Error
}

func (r *riderRepo) Update(ctx context.Context, rider *models.Rider) error {
	return r.db.WithContext(ctx).Save(rider).Error
}

func (r *riderRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Rider{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
