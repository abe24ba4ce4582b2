package models

import "time"

// RevokedToken blacklists a JWT by its jti when Redis is not configured.
// Rows older than the token lifetime are harmless leftovers; the token they
// refer to has expired anyway.
type RevokedToken struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RevokedAt time.Time `json:"revoked_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
