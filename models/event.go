package models

import "time"

type Event struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `gorm:"size:150" json:"location"`
	Image       *string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	StartsAt    time.Time  `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Status      string     `gorm:"type:enum('Upcoming','Ongoing','Past','Cancelled');default:'Upcoming'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}
