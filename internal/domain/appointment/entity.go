package appointment

import (
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Transition moves ap to status `to`, stamping the matching timestamp.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return err
	}

	switch to {
	case StatusCancelled:
		return Cancel(ap, now)
	case StatusCompleted:
		return Complete(ap, now)
	}
	return nil
}
