package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db    *gorm.DB
	locks *keyedMutex
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, locks: newKeyedMutex()}
}

var errSlotTaken = httperr.SlotUnavailable("time_conflict", "The requested time slot is no longer available.")

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, serviceID).Error; err != nil {
		return nil, notFound(err, "service_not_found", "Service not found.")
	}
	return &s, nil
}

func (r *AppointmentGormRepository) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		return nil, notFound(err, "user_not_found", "User not found.")
	}
	return &u, nil
}

func (r *AppointmentGormRepository) GetExpert(ctx context.Context, expertID uint) (*models.Expert, error) {
	var e models.Expert
	if err := r.db.WithContext(ctx).Preload("User").First(&e, expertID).Error; err != nil {
		return nil, notFound(err, "expert_not_found", "Expert not found.")
	}
	return &e, nil
}

// --------------------------------------------------
// Conflict gate
// --------------------------------------------------

func (r *AppointmentGormRepository) HasConflict(
	ctx context.Context,
	expertID uint,
	start time.Time,
	end time.Time,
	excludeID *uint,
) (bool, error) {
	return hasConflict(r.db.WithContext(ctx), expertID, start, end, excludeID)
}

func hasConflict(tx *gorm.DB, expertID uint, start, end time.Time, excludeID *uint) (bool, error) {
	q := tx.
		Model(&models.Appointment{}).
		Where(
			"expert_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			expertID, string(domain.StatusCancelled), end.UTC(), start.UTC(),
		)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) BookIfAvailable(ctx context.Context, ap *models.Appointment) error {
	return r.inExpertTx(ctx, ap.ExpertID, func(tx *gorm.DB) error {
		conflict, err := hasConflict(tx, ap.ExpertID, ap.StartTime, ap.EndTime, nil)
		if err != nil {
			return err
		}
		if conflict {
			return errSlotTaken
		}
		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) UpdateIfAvailable(ctx context.Context, ap *models.Appointment) error {
	return r.inExpertTx(ctx, ap.ExpertID, func(tx *gorm.DB) error {
		if ap.Status != string(domain.StatusCancelled) {
			id := ap.ID
			conflict, err := hasConflict(tx, ap.ExpertID, ap.StartTime, ap.EndTime, &id)
			if err != nil {
				return err
			}
			if conflict {
				return errSlotTaken
			}
		}
		return tx.Omit("Client", "Expert", "Service").Save(ap).Error
	})
}

// inExpertTx runs fn in a transaction that no other booking for the same
// expert can interleave with: a process-local lock plus, on Postgres, a
// transaction-scoped advisory lock. The exclusion constraint backs both.
func (r *AppointmentGormRepository) inExpertTx(ctx context.Context, expertID uint, fn func(tx *gorm.DB) error) error {
	unlock := r.locks.Lock(expertID)
	defer unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			key := fmt.Sprintf("expert:%d", expertID)
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return err
			}
		}
		return fn(tx)
	})

	if httperr.IsExclusionConflict(err) {
		return errSlotTaken
	}
	return err
}

// --------------------------------------------------
// State / reads
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Expert").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Omit("Client", "Expert", "Service").Save(ap).Error
}

func (r *AppointmentGormRepository) SetMeetingURL(ctx context.Context, id uint, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("meeting_url", url).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}
	return nil
}

func (r *AppointmentGormRepository) ListForClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Expert").
		Where("client_id = ?", clientID).
		Order("start_time ASC").
		Find(&aps).Error
	return aps, err
}

func (r *AppointmentGormRepository) ListForExpert(ctx context.Context, expertID uint) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		Where("expert_id = ?", expertID).
		Order("start_time ASC").
		Find(&aps).Error
	return aps, err
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	expertID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"expert_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			expertID, string(domain.StatusCancelled), end.UTC(), start.UTC(),
		).
		Order("start_time ASC").
		Find(&aps).Error
	return aps, err
}

func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundErr(code, message)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
