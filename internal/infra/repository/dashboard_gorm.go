package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/dashboard"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

// ExpertRevenue sums service prices over completed appointments. The join is
// a LEFT JOIN so an appointment whose service was deleted adds 0.
func (r *DashboardGormRepository) ExpertRevenue(ctx context.Context, expertID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Table("appointments").
		Select("COALESCE(SUM(services.price), 0)").
		Joins("LEFT JOIN services ON services.id = appointments.service_id").
		Where("appointments.expert_id = ? AND appointments.status = ?", expertID, "completed").
		Scan(&total).Error
	return total, err
}

func (r *DashboardGormRepository) ExpertClientCount(ctx context.Context, expertID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("expert_id = ?", expertID).
		Distinct("client_id").
		Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) StatusBreakdown(ctx context.Context, expertID uint) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS total").
		Where("expert_id = ?", expertID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := map[string]int64{"scheduled": 0, "completed": 0, "cancelled": 0}
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *DashboardGormRepository) AverageRating(ctx context.Context, expertID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
		Where("expert_id = ?", expertID).
		Scan(&row).Error
	return row.Avg, row.Total, err
}

func (r *DashboardGormRepository) UpcomingForExpert(ctx context.Context, expertID uint, now time.Time) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		Where("expert_id = ? AND start_time > ?", expertID, now.UTC()).
		Order("start_time ASC").
		Find(&aps).Error
	return aps, err
}

func (r *DashboardGormRepository) UpcomingForClient(ctx context.Context, clientID uint, now time.Time) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Expert").
		Where("client_id = ? AND start_time > ?", clientID, now.UTC()).
		Order("start_time ASC").
		Find(&aps).Error
	return aps, err
}

var _ domain.Repository = (*DashboardGormRepository)(nil)
