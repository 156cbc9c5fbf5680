package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/panpaya/siteme-api-go/pkg/models"
)

// AssignmentRepository is the data-access surface for schedule rows. Window
// bounds are ISO date strings; List windows are inclusive on both ends while
// ReplaceWindow takes an exclusive end, matching the generation semantics.
type AssignmentRepository interface {
	ListWindow(ctx context.Context, startDate, endDate string) ([]models.ScheduleAssignment, error)
	ListManualWindow(ctx context.Context, startDate, endExclusive string) ([]models.ScheduleAssignment, error)
	Get(ctx context.Context, id uint) (*models.ScheduleAssignment, error)
	Create(ctx context.Context, a *models.ScheduleAssignment) error
	Update(ctx context.Context, a *models.ScheduleAssignment) error
	Delete(ctx context.Context, id uint) error
	// ReplaceWindow deletes every non-manual row in [startDate, endExclusive)
	// and inserts the freshly computed rows, all inside one transaction.
	// Manual rows are never touched. Returns the number of rows deleted.
	ReplaceWindow(ctx context.Context, startDate, endExclusive string, rows []models.ScheduleAssignment) (int64, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) ListWindow(ctx context.Context, startDate, endDate string) ([]models.ScheduleAssignment, error) {
	var rows []models.ScheduleAssignment
	err := r.db.WithContext(ctx).
		Preload("Rider").
		Preload("Store").
		Preload("ExternalBrand").
		Where("shift_date >= ? AND shift_date <= ?", startDate, endDate).
		Order("shift_date, id").
		Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) ListManualWindow(ctx context.Context, startDate, endExclusive string) ([]models.ScheduleAssignment, error) {
	var rows []models.ScheduleAssignment
	err := r.db.WithContext(ctx).
		Where("shift_date >= ? AND shift_date < ? AND manual_override = ?", startDate, endExclusive, true).
		Order("shift_date, id").
		Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) Get(ctx context.Context, id uint) (*models.ScheduleAssignment, error) {
	var row models.ScheduleAssignment
	err := r.db.WithContext(ctx).
		Preload("Rider").
		Preload("Store").
		Preload("ExternalBrand").
		First(&row, id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *assignmentRepo) Create(ctx context.Context, a *models.ScheduleAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assignmentRepo) Update(ctx context.Context, a *models.ScheduleAssignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ScheduleAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepo) ReplaceWindow(ctx context.Context, startDate, endExclusive string, rows []models.ScheduleAssignment) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("shift_date >= ? AND shift_date < ? AND manual_override = ?", startDate, endExclusive, false).
			Delete(&models.ScheduleAssignment{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
