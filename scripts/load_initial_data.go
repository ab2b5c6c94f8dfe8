package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/config"
	"task-manager-backend/internal/database"
	"task-manager-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type TeamData struct {
	Name string `yaml:"name"`
}

type RoleData struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Permissions []string `yaml:"permissions,omitempty"`
}

type PermissionData struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

type UserData struct {
	Username    string   `yaml:"username"`
	Email       string   `yaml:"email"`
	Password    string   `yaml:"password"`
	TeamName    string   `yaml:"team_name,omitempty"`
	IsSuperuser bool     `yaml:"is_superuser"`
	Roles       []string `yaml:"roles,omitempty"`
}

// File structures
type TeamsFile struct {
	Teams []TeamData `yaml:"teams"`
}

type RolesFile struct {
	Permissions []PermissionData `yaml:"permissions"`
	Roles       []RoleData       `yaml:"roles"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for
// Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	teams, err := loadTeamsFile(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	rolesFile, err := loadRolesFile(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	users, err := loadUsersFile(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	teamsByName := make(map[string]*models.Team)
	for _, t := range teams {
		team, err := upsertTeam(db, t.Name)
		if err != nil {
			return err
		}
		teamsByName[t.Name] = team
	}
	log.Printf("Loaded %d teams", len(teams))

	permsByName := make(map[string]*models.Permission)
	for _, p := range rolesFile.Permissions {
		perm, err := upsertPermission(db, p)
		if err != nil {
			return err
		}
		permsByName[p.Name] = perm
	}
	rolesByName := make(map[string]*models.Role)
	for _, r := range rolesFile.Roles {
		role, err := upsertRole(db, r, permsByName)
		if err != nil {
			return err
		}
		rolesByName[r.Name] = role
	}
	log.Printf("Loaded %d permissions, %d roles", len(rolesFile.Permissions), len(rolesFile.Roles))

	for _, u := range users {
		if err := upsertUser(db, u, teamsByName, rolesByName); err != nil {
			return err
		}
	}
	log.Printf("Loaded %d users", len(users))

	return nil
}

func loadTeamsFile(dataDir string) ([]TeamData, error) {
	var file TeamsFile
	if err := readYAML(filepath.Join(dataDir, "teams.yaml"), &file); err != nil {
		return nil, err
	}
	return file.Teams, nil
}

func loadRolesFile(dataDir string) (*RolesFile, error) {
	var file RolesFile
	if err := readYAML(filepath.Join(dataDir, "roles.yaml"), &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func loadUsersFile(dataDir string) ([]UserData, error) {
	var file UsersFile
	if err := readYAML(filepath.Join(dataDir, "users.yaml"), &file); err != nil {
		return nil, err
	}
	return file.Users, nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

func upsertTeam(db *gorm.DB, name string) (*models.Team, error) {
	var team models.Team
	err := db.Where("name = ?", name).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		team = models.Team{Name: name}
		if err := db.Create(&team).Error; err != nil {
			return nil, fmt.Errorf("failed to create team %q: %w", name, err)
		}
		return &team, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func upsertPermission(db *gorm.DB, data PermissionData) (*models.Permission, error) {
	var perm models.Permission
	err := db.Where("name = ?", data.Name).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		perm = models.Permission{Name: data.Name}
		if data.Description != "" {
			perm.Description = &data.Description
		}
		if err := db.Create(&perm).Error; err != nil {
			return nil, fmt.Errorf("failed to create permission %q: %w", data.Name, err)
		}
		return &perm, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func upsertRole(db *gorm.DB, data RoleData, perms map[string]*models.Permission) (*models.Role, error) {
	var role models.Role
	err := db.Where("name = ?", data.Name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = models.Role{Name: data.Name}
		if data.Description != "" {
			role.Description = &data.Description
		}
		if err := db.Create(&role).Error; err != nil {
			return nil, fmt.Errorf("failed to create role %q: %w", data.Name, err)
		}
	} else if err != nil {
		return nil, err
	}

	for _, permName := range data.Permissions {
		perm, ok := perms[permName]
		if !ok {
			return nil, fmt.Errorf("role %q references unknown permission %q", data.Name, permName)
		}
		grant := models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}
		var existing models.RolePermission
		err := db.Where("role_id = ? AND permission_id = ?", role.ID, perm.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&grant).Error; err != nil {
				return nil, fmt.Errorf("failed to grant %q to role %q: %w", permName, data.Name, err)
			}
		} else if err != nil {
			return nil, err
		}
	}
	return &role, nil
}

func upsertUser(db *gorm.DB, data UserData, teams map[string]*models.Team, roles map[string]*models.Role) error {
	var user models.User
	err := db.Where("username = ?", data.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := auth.HashPassword(data.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", data.Username, err)
		}
		user = models.User{
			Username:     &data.Username,
			Email:        &data.Email,
			PasswordHash: &hash,
			IsActive:     true,
			IsSuperuser:  data.IsSuperuser,
		}
		if data.TeamName != "" {
			team, ok := teams[data.TeamName]
			if !ok {
				return fmt.Errorf("user %q references unknown team %q", data.Username, data.TeamName)
			}
			user.TeamID = &team.ID
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %q: %w", data.Username, err)
		}
	} else if err != nil {
		return err
	}

	for _, roleName := range data.Roles {
		role, ok := roles[roleName]
		if !ok {
			return fmt.Errorf("user %q references unknown role %q", data.Username, roleName)
		}
		var existing models.UserRole
		err := db.Where("user_id = ? AND role_id = ?", user.ID, role.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error; err != nil {
				return fmt.Errorf("failed to grant role %q to user %q: %w", roleName, data.Username, err)
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
