package models

import "time"

// Team represents a team that users belong to
type Team struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:255;not null" validate:"required,min=1,max=255"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Users []User `json:"users,omitempty" gorm:"foreignKey:TeamID"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}
