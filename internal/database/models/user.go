package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the task manager. Username and email are
// optional but globally unique when present; PasswordHash is never serialized.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     *string    `json:"username,omitempty" gorm:"size:100;uniqueIndex:idx_users_username"`
	Email        *string    `json:"email,omitempty" gorm:"size:255;uniqueIndex:idx_users_email" validate:"omitempty,email"`
	TeamID       *int64     `json:"team_id,omitempty" gorm:"index"`
	PasswordHash *string    `json:"-" gorm:"type:text"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	IsSuperuser  bool       `json:"is_superuser" gorm:"not null;default:false"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	// Relationships
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate sets the UUID if not already set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
