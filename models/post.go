package models

import "time"

type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	Slug        string     `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Excerpt     string     `gorm:"type:varchar(255)" json:"excerpt"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Image       *string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	AuthorID    int64      `gorm:"not null;index" json:"author_id"`
	Status      string     `gorm:"type:enum('Draft','Published','Archived');default:'Draft'" json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
