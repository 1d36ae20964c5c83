package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) ReplaceForExpert(
	ctx context.Context,
	expertID uint,
	rows []models.Availability,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("expert_id = ?", expertID).
			Delete(&models.Availability{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].ExpertID = expertID
		}
		return tx.Create(&rows).Error
	})
}

func (r *AvailabilityGormRepository) ListForExpert(ctx context.Context, expertID uint) ([]models.Availability, error) {
	var rows []models.Availability
	err := r.db.WithContext(ctx).
		Where("expert_id = ?", expertID).
		Order("date ASC, start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *AvailabilityGormRepository) ListForRange(
	ctx context.Context,
	expertID uint,
	from time.Time,
	to time.Time,
) ([]models.Availability, error) {
	var rows []models.Availability
	err := r.db.WithContext(ctx).
		Where("expert_id = ? AND date >= ? AND date < ?", expertID, from.UTC(), to.UTC()).
		Order("date ASC, start_time ASC").
		Find(&rows).Error
	return rows, err
}

var _ domain.Repository = (*AvailabilityGormRepository)(nil)
