package appointment

import "github.com/BruksfildServices01/expert-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal states accept no further transition or field change.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.Validation("invalid_state", "Appointment can no longer be cancelled.")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.Validation("invalid_state", "Appointment can no longer be completed.")
	}
	return nil
}

// CanTransition validates a requested status change. Staying in the same
// non-terminal status is allowed so partial updates can echo it back.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return httperr.Validation("invalid_status", "Unknown appointment status.")
	}
	if from.Terminal() {
		return httperr.Validation("invalid_state", "Appointment is already "+string(from)+".")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
