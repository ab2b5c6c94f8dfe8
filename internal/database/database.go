package database

import (
	"fmt"
	"time"

	"task-manager-backend/internal/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// SkipMigrate connects without touching the schema. Used by callers
	// that expect an already-migrated database.
	SkipMigrate bool
}

// Initialize opens a Postgres connection and creates the schema from GORM
// models. Foreign keys are added afterwards with explicit referential
// actions; the tasks<->assignment cycle (task_id one way, the
// current-assignment pointer the other) cannot be expressed in a single
// AutoMigrate pass.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	// Defaults
	if opts == nil {
		opts = &Options{}
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 20
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	if opts.ConnMaxIdleTime == 0 {
		opts.ConnMaxIdleTime = 10 * time.Minute
	}
	// Open DB
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
		// All foreign keys are created below with explicit ON DELETE actions
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	// Ensure required extension for UUID generation (users.id default gen_random_uuid())
	_ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error

	if !opts.SkipMigrate {
		all := []interface{}{
			&models.Team{},
			&models.User{},
			&models.Task{},
			&models.Assignment{},
			&models.TaskComment{},
			&models.TaskDependency{},
			&models.Role{},
			&models.Permission{},
			&models.UserRole{},
			&models.RolePermission{},
			&models.RefreshToken{},
		}
		if err := db.AutoMigrate(all...); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		if err := addConstraints(db); err != nil {
			return nil, fmt.Errorf("add constraints: %w", err)
		}
	}

	return db, nil
}

// addConstraints installs foreign keys and the status check constraint as a
// second line of defense beyond application-level validation. Referential
// actions follow the ownership model: task-owned rows cascade, independent
// aggregates detach (SET NULL).
func addConstraints(db *gorm.DB) error {
	ddl := []string{
		`ALTER TABLE users ADD CONSTRAINT fk_users_team
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE SET NULL`,
		`ALTER TABLE tasks ADD CONSTRAINT fk_tasks_creator
			FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE SET NULL`,
		`ALTER TABLE tasks ADD CONSTRAINT fk_tasks_current_assignment
			FOREIGN KEY (current_assignment_id) REFERENCES assignment(id) ON DELETE SET NULL`,
		`ALTER TABLE assignment ADD CONSTRAINT fk_assignment_task
			FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE`,
		`ALTER TABLE assignment ADD CONSTRAINT fk_assignment_assigned_to
			FOREIGN KEY (assigned_to) REFERENCES users(id)`,
		`ALTER TABLE assignment ADD CONSTRAINT fk_assignment_assigned_by
			FOREIGN KEY (assigned_by) REFERENCES users(id) ON DELETE SET NULL`,
		`ALTER TABLE task_comments ADD CONSTRAINT fk_comments_task
			FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE`,
		`ALTER TABLE task_comments ADD CONSTRAINT fk_comments_author
			FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE SET NULL`,
		`ALTER TABLE task_dependencies ADD CONSTRAINT fk_dependencies_task
			FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE`,
		`ALTER TABLE task_dependencies ADD CONSTRAINT fk_dependencies_target
			FOREIGN KEY (depends_on_task_id) REFERENCES tasks(id) ON DELETE CASCADE`,
		`ALTER TABLE user_roles ADD CONSTRAINT fk_user_roles_user
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE`,
		`ALTER TABLE user_roles ADD CONSTRAINT fk_user_roles_role
			FOREIGN KEY (role_id) REFERENCES roles(id) ON DELETE CASCADE`,
		`ALTER TABLE role_permissions ADD CONSTRAINT fk_role_permissions_role
			FOREIGN KEY (role_id) REFERENCES roles(id) ON DELETE CASCADE`,
		`ALTER TABLE role_permissions ADD CONSTRAINT fk_role_permissions_permission
			FOREIGN KEY (permission_id) REFERENCES permissions(id) ON DELETE CASCADE`,
		`ALTER TABLE refresh_tokens ADD CONSTRAINT fk_refresh_tokens_user
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE`,
		`ALTER TABLE tasks ADD CONSTRAINT status_enum_check
			CHECK (status IN ('unassigned','assigned','in_progress','review','completed','abandoned'))`,
	}
	for _, stmt := range ddl {
		// Idempotent: re-running migration against an existing schema is fine
		wrapped := fmt.Sprintf(
			`DO $$ BEGIN %s; EXCEPTION WHEN duplicate_object THEN NULL; END $$;`, stmt)
		if err := db.Exec(wrapped).Error; err != nil {
			return err
		}
	}
	return nil
}
