package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// StoreRepository is the data-access surface for Panpaya stores.
type StoreRepository interface {
	List(ctx context.Context, skip, limit int) ([]models.Store, error)
	// ListAll returns every store ordered by ID, the snapshot the schedule
	// engine generates from.
	ListAll(ctx context.Context) ([]models.Store, error)
	Get(ctx context.Context, id uint) (*models.Store, error)
	GetByCode(ctx context.Context, code string) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uint) error
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) List(ctx context.Context, skip, limit int) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit).Find(&stores).Error
	return stores, err
}

func (r *storeRepo) ListAll(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).Order("id").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) Get(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetByCode(ctx context.Context, code string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepo) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Store{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
