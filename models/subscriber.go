package models

import "time"

type Subscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Status    string    `gorm:"type:enum('Subscribed','Unsubscribed');default:'Subscribed'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
