//go:build integration
// +build integration

package testutils

import (
	"strings"
	"testing"

	"task-manager-backend/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// TestInitializeSkipMigrate verifies that SkipMigrate connects without
// creating any schema, and that the default path migrates.
func TestInitializeSkipMigrate(t *testing.T) {
	s := SetupTestSuite(t)
	defer s.TeardownTestSuite()

	require.NoError(t, s.DB.Exec(`DROP DATABASE IF EXISTS optcheck WITH (FORCE)`).Error)
	require.NoError(t, s.DB.Exec(`CREATE DATABASE optcheck`).Error)
	scratch := strings.Replace(s.Config.DatabaseURL, "/testdb", "/optcheck", 1)

	db, err := database.Initialize(scratch, &database.Options{
		LogLevel:    logger.Silent,
		SkipMigrate: true,
	})
	require.NoError(t, err)
	require.False(t, db.Migrator().HasTable("tasks"))
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	db, err = database.Initialize(scratch, &database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	require.True(t, db.Migrator().HasTable("tasks"))
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	require.NoError(t, s.DB.Exec(`DROP DATABASE optcheck WITH (FORCE)`).Error)
}
