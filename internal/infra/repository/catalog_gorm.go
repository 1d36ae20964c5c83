package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Experts
// --------------------------------------------------

func (r *CatalogGormRepository) GetExpert(ctx context.Context, expertID uint) (*models.Expert, error) {
	var e models.Expert
	if err := r.db.WithContext(ctx).Preload("User").First(&e, expertID).Error; err != nil {
		return nil, notFound(err, "expert_not_found", "Expert not found.")
	}
	return &e, nil
}

func (r *CatalogGormRepository) GetExpertByUser(ctx context.Context, userID uint) (*models.Expert, error) {
	var e models.Expert
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&e).Error; err != nil {
		return nil, notFound(err, "expert_not_found", "Expert profile not found.")
	}
	return &e, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(ctx context.Context, expertID uint) ([]models.Service, error) {
	var out []models.Service
	err := r.db.WithContext(ctx).
		Where("expert_id = ?", expertID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *CatalogGormRepository) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, serviceID).Error; err != nil {
		return nil, notFound(err, "service_not_found", "Service not found.")
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// DeleteService is a hard delete. Appointments keep the dangling service id.
func (r *CatalogGormRepository) DeleteService(ctx context.Context, serviceID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, serviceID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("service_not_found", "Service not found.")
	}
	return nil
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (r *CatalogGormRepository) ListClients(ctx context.Context, expertID uint, query string) ([]models.User, error) {
	sub := r.db.
		Model(&models.Appointment{}).
		Select("client_id").
		Where("expert_id = ?", expertID)

	q := r.db.WithContext(ctx).Where("id IN (?)", sub)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.User
	err := q.Order("name ASC").Find(&clients).Error
	return clients, err
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *CatalogGormRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *CatalogGormRepository) ListReviews(ctx context.Context, expertID uint) ([]models.Review, error) {
	var out []models.Review
	err := r.db.WithContext(ctx).
		Where("expert_id = ?", expertID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *CatalogGormRepository) HasCompletedAppointment(ctx context.Context, expertID, clientID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("expert_id = ? AND client_id = ? AND status = ?", expertID, clientID, "completed").
		Count(&n).Error
	return n > 0, err
}

var _ domain.Repository = (*CatalogGormRepository)(nil)
