package models

import "time"

type TeamMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      string    `gorm:"size:100;not null" json:"role"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Photo     *string   `gorm:"type:varchar(255)" json:"photo,omitempty"`
	Email     *string   `gorm:"size:191" json:"email,omitempty"`
	Position  int       `gorm:"default:0" json:"position"`
	Status    string    `gorm:"type:enum('Active','Hidden');default:'Active'" json:"status"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
