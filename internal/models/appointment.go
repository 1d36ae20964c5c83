package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint  `gorm:"index;not null" json:"client_id"`
	Client   *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	ExpertID uint    `gorm:"index;not null" json:"expert_id"`
	Expert   *Expert `gorm:"foreignKey:ExpertID" json:"expert,omitempty"`

	ServiceID uint     `gorm:"index;not null" json:"service_id"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	StartTime time.Time `gorm:"index;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	MeetingURL  string     `gorm:"size:500" json:"meeting_url,omitempty"`
	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
