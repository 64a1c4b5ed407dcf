package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/middleware"
	"github.com/kiptoo5489/learnhub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLessonOrder(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	db := testDB(t)

	instructor := models.User{Username: "ina", Email: "ina@example.com", Password: "x", Role: "instructor"}
	require.NoError(t, db.Create(&instructor).Error)
	course := models.Course{Title: "Go Basics", Description: "d", Category: "dev", Level: "beginner", Price: 50, InstructorID: instructor.ID}
	require.NoError(t, db.Create(&course).Error)

	h := NewCourseHandler(db)
	app := fiber.New()
	app.Post("/api/courses/:courseId/lessons", middleware.Protected(), h.CreateLesson)
	token := bearerToken(t, instructor)

	createLesson := func(t *testing.T, body string) models.Lesson {
		t.Helper()
		req := httptest.NewRequest("POST", "/api/courses/"+course.ID.String()+"/lessons", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var lesson models.Lesson
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&lesson))
		return lesson
	}

	t.Run("AppendsWhenOmitted", func(t *testing.T) {
		first := createLesson(t, `{"title":"Intro"}`)
		assert.Equal(t, 1, first.Order)

		second := createLesson(t, `{"title":"Setup"}`)
		assert.Equal(t, 2, second.Order)
	})

	t.Run("ExplicitZeroKept", func(t *testing.T) {
		lesson := createLesson(t, `{"title":"Prologue","order":0}`)
		assert.Equal(t, 0, lesson.Order)

		var stored models.Lesson
		require.NoError(t, db.First(&stored, "id = ?", lesson.ID).Error)
		assert.Equal(t, 0, stored.Order)
	})
}
