package database_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/models"
)

// newTestDB opens a fresh in-memory sqlite database. The database is named
// after a random UUID so parallel tests never share state through sqlite's
// shared cache.
func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Follow{}))

	return database.NewDatabase(db)
}

func createTestUser(t *testing.T, db *database.Database) *models.User {
	t.Helper()

	user := &models.User{
		Username:     gofakeit.Username(),
		Email:        gofakeit.Email(),
		PasswordHash: "x",
		LastSeenAt:   time.Now(),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.SaveUser(user))
	return user
}

func createTestPost(t *testing.T, db *database.Database, author *models.User, body string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Body:      body,
		UserID:    author.ID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.SavePost(post))
	return post
}
