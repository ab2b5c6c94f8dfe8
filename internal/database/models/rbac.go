package models

import "github.com/google/uuid"

// Role is a named role grantable to users
type Role struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:100;not null;uniqueIndex" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
}

// TableName returns the table name for Role
func (Role) TableName() string {
	return "roles"
}

// Permission is a named permission grantable to roles
type Permission struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:100;not null;uniqueIndex" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
}

// TableName returns the table name for Permission
func (Permission) TableName() string {
	return "permissions"
}

// UserRole joins users to roles
type UserRole struct {
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	RoleID int64     `json:"role_id" gorm:"primaryKey;autoIncrement:false"`
}

// TableName returns the table name for UserRole
func (UserRole) TableName() string {
	return "user_roles"
}

// RolePermission joins roles to permissions
type RolePermission struct {
	RoleID       int64 `json:"role_id" gorm:"primaryKey;autoIncrement:false"`
	PermissionID int64 `json:"permission_id" gorm:"primaryKey;autoIncrement:false"`
}

// TableName returns the table name for RolePermission
func (RolePermission) TableName() string {
	return "role_permissions"
}
