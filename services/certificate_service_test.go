package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/kiptoo5489/learnhub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Certificate{}))
	return db
}

func TestIssueCertificateOnce(t *testing.T) {
	db := testDB(t)

	user := models.User{Username: "jane", Email: "jane@example.com", Password: "x", Role: "student"}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "Go Basics", Description: "d", Category: "dev", Level: "beginner", Price: 50}
	require.NoError(t, db.Create(&course).Error)

	svc := NewCertificateService(db)

	first, created, err := svc.Issue(db, user, course)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, fmt.Sprintf("/certificates/%s-%s.pdf", user.ID, course.ID), first.CertificateURL)
	assert.Len(t, first.SerialNumber, 10)

	second, created, err := svc.Issue(db, user, course)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIssuePerUserAndCourse(t *testing.T) {
	db := testDB(t)

	jane := models.User{Username: "jane", Email: "jane@example.com", Password: "x", Role: "student"}
	require.NoError(t, db.Create(&jane).Error)
	omar := models.User{Username: "omar", Email: "omar@example.com", Password: "x", Role: "student"}
	require.NoError(t, db.Create(&omar).Error)
	course := models.Course{Title: "Go Basics", Description: "d", Category: "dev", Level: "beginner", Price: 50}
	require.NoError(t, db.Create(&course).Error)

	svc := NewCertificateService(db)

	_, created, err := svc.Issue(db, jane, course)
	require.NoError(t, err)
	assert.True(t, created)

	other, created, err := svc.Issue(db, omar, course)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, omar.ID, other.UserID)

	var count int64
	require.NoError(t, db.Model(&models.Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
