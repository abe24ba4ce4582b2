package models

import "time"

// VolunteerTask is a unit of work the organization opens up to volunteers.
type VolunteerTask struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	ProjectID   *uint      `gorm:"index" json:"project_id,omitempty"`
	Slots       int        `gorm:"not null;default:1" json:"slots"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Status      string     `gorm:"type:enum('Open','Closed','Done');default:'Open'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (VolunteerTask) TableName() string {
	return "volunteer_tasks"
}

type TaskAssignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"not null;index" json:"task_id"`
	VolunteerID uint      `gorm:"not null;index" json:"volunteer_id"`
	AssignedAt  time.Time `json:"assigned_at"`
}

func (TaskAssignment) TableName() string {
	return "task_assignments"
}
