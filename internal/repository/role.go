package repository

import (
	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleRepository handles database operations for roles and role grants
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role
func (r *RoleRepository) Create(role *models.Role) error {
	return translateDBError(r.db.Create(role).Error)
}

// GetByName retrieves a role by name
func (r *RoleRepository) GetByName(name string) (*models.Role, error) {
	var role models.Role
	err := r.db.First(&role, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GrantToUser grants a role to a user
func (r *RoleRepository) GrantToUser(userID uuid.UUID, roleID int64) error {
	return translateDBError(r.db.Create(&models.UserRole{UserID: userID, RoleID: roleID}).Error)
}

// UserHasRole reports whether the user holds the named role
func (r *RoleRepository) UserHasRole(userID uuid.UUID, roleName string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ? AND roles.name = ?", userID, roleName).
		Count(&count).Error
	return count > 0, err
}
