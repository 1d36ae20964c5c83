package models

import "time"

// Expert is the bookable profile of a user whose role is expert.
type Expert struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User `json:"user,omitempty"`

	Title string `gorm:"size:100" json:"title"`
	Bio   string `gorm:"type:text" json:"bio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
