package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a persisted refresh token owned by a user, removed on user
// removal.
type RefreshToken struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	JTI       uuid.UUID `json:"jti" gorm:"type:uuid;not null;uniqueIndex"`
	IssuedAt  time.Time `json:"issued_at" gorm:"not null;autoCreateTime"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
}

// TableName returns the table name for RefreshToken
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Valid reports whether the token is usable at the given instant: not revoked
// and not expired.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now)
}
