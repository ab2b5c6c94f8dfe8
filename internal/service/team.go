package service

import (
	"errors"
	"fmt"
	"time"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// TeamService handles business logic for teams
type TeamService struct {
	teamRepo  repository.TeamRepositoryInterface
	validator *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo repository.TeamRepositoryInterface, validator *validator.Validate) *TeamService {
	return &TeamService{
		teamRepo:  teamRepo,
		validator: validator,
	}
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// TeamResponse represents the response for team operations
type TeamResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamListResponse represents a paginated list of teams
type TeamListResponse struct {
	Teams []TeamResponse `json:"teams"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// Create creates a new team
func (s *TeamService) Create(req *CreateTeamRequest) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidationError(err)
	}

	team := &models.Team{Name: req.Name}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return toTeamResponse(team), nil
}

// GetByID retrieves a team by ID
func (s *TeamService) GetByID(id int64) (*TeamResponse, error) {
	team, err := s.teamRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return toTeamResponse(team), nil
}

// List retrieves teams with pagination
func (s *TeamService) List(skip, limit int) (*TeamListResponse, error) {
	skip, limit, err := normalizePagination(skip, limit)
	if err != nil {
		return nil, err
	}

	teams, total, err := s.teamRepo.GetAll(limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	responses := make([]TeamResponse, len(teams))
	for i := range teams {
		responses[i] = *toTeamResponse(&teams[i])
	}

	return &TeamListResponse{
		Teams: responses,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

func toTeamResponse(team *models.Team) *TeamResponse {
	return &TeamResponse{
		ID:        team.ID,
		Name:      team.Name,
		CreatedAt: team.CreatedAt,
	}
}
