package models

import "time"

type Faq struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"type:varchar(255);not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Position  int       `gorm:"default:0" json:"position"`
	Status    string    `gorm:"type:enum('Active','Hidden');default:'Active'" json:"status"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Faq) TableName() string {
	return "faqs"
}
