package models

import "time"

// ChatSession represents a visitor conversation with the site assistant
type ChatSession struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	VisitorName   string     `gorm:"column:visitor_name;size:100" json:"visitor_name"`
	Status        string     `gorm:"type:enum('active','ended');default:'active'" json:"status"`
	EndedAt       *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	EndReason     string     `gorm:"column:end_reason;size:50" json:"end_reason,omitempty"` // 'user', 'timeout'
	LastMessageAt time.Time  `gorm:"column:last_message_at" json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Messages []ChatMessage `gorm:"foreignKey:SessionID" json:"messages,omitempty"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatMessage represents a message in a chat session
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"column:session_id;not null;index" json:"session_id"`
	Role      string    `gorm:"type:enum('user','assistant');not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
