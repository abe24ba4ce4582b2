package models

import "time"

type ContactMessage struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:191;not null" json:"email"`
	Subject   string     `gorm:"size:150" json:"subject"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
