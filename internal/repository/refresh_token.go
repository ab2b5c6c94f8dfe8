package repository

import (
	"task-manager-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepository handles database operations for refresh tokens
type RefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create persists a new refresh token
func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	return translateDBError(r.db.Create(token).Error)
}

// GetByJTI retrieves a refresh token by its unique token identifier
func (r *RefreshTokenRepository) GetByJTI(jti uuid.UUID) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.First(&token, "jti = ?", jti).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Revoke marks a refresh token as revoked
func (r *RefreshTokenRepository) Revoke(jti uuid.UUID) error {
	return r.db.Model(&models.RefreshToken{}).Where("jti = ?", jti).Update("revoked", true).Error
}
