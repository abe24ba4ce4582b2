package models

import "time"

type Project struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:150;not null" json:"title"`
	Summary      string     `gorm:"type:varchar(255)" json:"summary"`
	Body         string     `gorm:"type:text" json:"body"`
	Image        *string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	TargetAmount float64    `gorm:"type:decimal(15,2);default:0" json:"target_amount"`
	RaisedAmount float64    `gorm:"type:decimal(15,2);default:0" json:"raised_amount"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	Status       string     `gorm:"type:enum('Active','Completed','Archived');default:'Active'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
