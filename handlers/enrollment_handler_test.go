package handlers

import (
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/middleware"
	"github.com/kiptoo5489/learnhub/models"
	"github.com/kiptoo5489/learnhub/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hitting 100% twice must leave exactly one certificate behind.
func TestUpdateProgressIssuesCertificateOnce(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	db := testDB(t)

	student := models.User{Username: "jane", Email: "jane@example.com", Password: "x", Role: "student"}
	require.NoError(t, db.Create(&student).Error)
	instructor := models.User{Username: "ina", Email: "ina@example.com", Password: "x", Role: "instructor"}
	require.NoError(t, db.Create(&instructor).Error)
	course := models.Course{Title: "Go Basics", Description: "d", Category: "dev", Level: "beginner", Price: 50, InstructorID: instructor.ID, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	enrollment := models.Enrollment{UserID: student.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	h := NewEnrollmentHandler(db, services.NewCertificateService(db))
	app := fiber.New()
	app.Put("/api/enrollments/:id/progress", middleware.Protected(), h.UpdateProgress)

	token := bearerToken(t, student)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("PUT", "/api/enrollments/"+enrollment.ID.String()+"/progress", strings.NewReader(`{"progress":100}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var count int64
	require.NoError(t, db.Model(&models.Certificate{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var updated models.Enrollment
	require.NoError(t, db.First(&updated, "id = ?", enrollment.ID).Error)
	assert.Equal(t, 100, updated.Progress)
	assert.NotNil(t, updated.CompletedAt)
}

func TestUpdateProgressBelowCompletion(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	db := testDB(t)

	student := models.User{Username: "jane", Email: "jane@example.com", Password: "x", Role: "student"}
	require.NoError(t, db.Create(&student).Error)
	course := models.Course{Title: "Go Basics", Description: "d", Category: "dev", Level: "beginner", Price: 50}
	require.NoError(t, db.Create(&course).Error)
	enrollment := models.Enrollment{UserID: student.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	h := NewEnrollmentHandler(db, services.NewCertificateService(db))
	app := fiber.New()
	app.Put("/api/enrollments/:id/progress", middleware.Protected(), h.UpdateProgress)

	req := httptest.NewRequest("PUT", "/api/enrollments/"+enrollment.ID.String()+"/progress", strings.NewReader(`{"progress":60}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, student))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var updated models.Enrollment
	require.NoError(t, db.First(&updated, "id = ?", enrollment.ID).Error)
	assert.Equal(t, 60, updated.Progress)
	assert.Nil(t, updated.CompletedAt)
}
