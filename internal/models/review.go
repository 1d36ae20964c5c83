package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ExpertID      uint  `gorm:"index;not null" json:"expert_id"`
	ClientID      uint  `gorm:"index;not null" json:"client_id"`
	AppointmentID *uint `json:"appointment_id,omitempty"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
