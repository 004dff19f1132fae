package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealpress/mealpress/models"
)

var testDBSeq atomic.Int64

// setupTestDB creates an in-memory sqlite database with the full schema.
// Each call gets its own named database so tests stay isolated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open in-memory sqlite")

	// A single connection serializes sqlite access, so concurrent service
	// calls contend on the store's constraints rather than on file locks.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(&models.User{}, &models.BlogPost{}, &models.Comment{})
	require.NoError(t, err, "failed to migrate schema")

	return db
}

// registerTestUser creates an account through the service and returns it.
func registerTestUser(t *testing.T, auth *AuthService, name, email string) *models.User {
	t.Helper()
	user, err := auth.Register(name, email, "password123")
	require.NoError(t, err)
	return user
}
