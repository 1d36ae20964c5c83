package models

import "time"

const (
	VideoPlatformNone       = ""
	VideoPlatformGoogleMeet = "google_meet"
)

type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ExpertID uint `gorm:"index;not null" json:"expert_id"`

	Name          string  `gorm:"size:100;not null" json:"name"`
	Description   string  `gorm:"size:255" json:"description"`
	DurationMin   int     `gorm:"not null" json:"duration_min"`
	Price         float64 `json:"price"`
	VideoPlatform string  `gorm:"size:20" json:"video_platform"`
	ImageURL      string  `gorm:"size:500" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
