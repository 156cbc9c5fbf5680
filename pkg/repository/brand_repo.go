package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// BrandRepository is the data-access surface for external brands.
type BrandRepository interface {
	// List returns every brand ordered by name; generation relies on this
	// ordering for a stable rotation.
	List(ctx context.Context) ([]models.ExternalBrand, error)
	Get(ctx context.Context, id uint) (*models.ExternalBrand, error)
	GetByName(ctx context.Context, name string) (*models.ExternalBrand, error)
	Create(ctx context.Context, brand *models.ExternalBrand) error
	Update(ctx context.Context, brand *models.ExternalBrand) error
	Delete(ctx context.Context, id uint) error
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepo(db *gorm.DB) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) List(ctx context.Context) ([]models.ExternalBrand, error) {
	var brands []models.ExternalBrand
	err := r.db.WithContext(ctx).Order("name").Find(&brands).Error
	return brands, err
}

func (r *brandRepo) Get(ctx context.Context, id uint) (*models.ExternalBrand, error) {
	var brand models.ExternalBrand
	if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) GetByName(ctx context.Context, name string) (*models.ExternalBrand, error) {
	var brand models.ExternalBrand
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) Create(ctx context.Context, brand *models.ExternalBrand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *brandRepo) Update(ctx context.Context, brand *models.ExternalBrand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *brandRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ExternalBrand{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
