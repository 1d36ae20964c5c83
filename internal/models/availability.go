package models

import (
	"time"

	"gorm.io/datatypes"
)

// Availability is one declared working window of an expert on a calendar
// date. Times are "HH:mm" wall-clock values in UTC.
type Availability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ExpertID uint `gorm:"index;not null" json:"expert_id"`

	Date      datatypes.Date `gorm:"type:date;index;not null" json:"date"`
	StartTime string         `gorm:"size:5;not null" json:"start_time"`
	EndTime   string         `gorm:"size:5;not null" json:"end_time"`
	Recurring bool           `json:"recurring"`

	CreatedAt time.Time `json:"created_at"`
}
