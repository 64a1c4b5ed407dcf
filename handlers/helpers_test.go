package handlers

import (
	"path/filepath"
	"testing"

	"github.com/kiptoo5489/learnhub/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret"

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.Enrollment{},
		&models.Certificate{},
		&models.Payment{},
	))
	return db
}

func bearerToken(t *testing.T, user models.User) string {
	t.Helper()
	signed, err := generateToken(user, testSecret)
	require.NoError(t, err)
	return "Bearer " + signed
}
