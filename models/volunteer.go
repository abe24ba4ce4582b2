package models

import "time"

type Volunteer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Phone     *string   `gorm:"size:20" json:"phone,omitempty"`
	Interests string    `gorm:"type:varchar(255)" json:"interests"`
	Status    string    `gorm:"type:enum('Applied','Active','Inactive');default:'Applied'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Volunteer) TableName() string {
	return "volunteers"
}
