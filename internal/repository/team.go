package repository

import (
	"task-manager-backend/internal/database/models"

	"gorm.io/gorm"
)

// TeamRepository handles database operations for teams
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team
func (r *TeamRepository) Create(team *models.Team) error {
	return translateDBError(r.db.Create(team).Error)
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(id int64) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetAll retrieves all teams with pagination
func (r *TeamRepository) GetAll(limit, offset int) ([]models.Team, int64, error) {
	var teams []models.Team
	var total int64

	if err := r.db.Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}
