package handlers

import (
	"encoding/json"
	"fmt"
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

func TestScoreQuiz(t *testing.T) {
	twoQuestions := models.QuestionList{
		{Text: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
		{Text: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3},
	}

	tests := []struct {
		name        string
		questions   models.QuestionList
		answers     []int
		wantCorrect int
		wantScore   int
	}{
		{"AllCorrect", twoQuestions, []int{0, 3}, 2, 100},
		{"AllWrong", twoQuestions, []int{1, 1}, 0, 0},
		{"HalfCorrect", twoQuestions, []int{0, 1}, 1, 50},
		{"Unanswered", twoQuestions, []int{-1, -1}, 0, 0},
		{"ShortAnswerList", twoQuestions, []int{0}, 1, 50},
		{"ExtraAnswersIgnored", twoQuestions, []int{0, 3, 2}, 2, 100},
		{"RoundsUp", models.QuestionList{
			{Options: []string{"a", "b"}, CorrectAnswer: 0},
			{Options: []string{"a", "b"}, CorrectAnswer: 0},
			{Options: []string{"a", "b"}, CorrectAnswer: 0},
		}, []int{0, 0, 1}, 2, 67},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			correct, score := scoreQuiz(tc.questions, tc.answers)
			assert.Equal(t, tc.wantCorrect, correct)
			assert.Equal(t, tc.wantScore, score)
		})
	}
}

func TestScoreQuizPassingThreshold(t *testing.T) {
	questions := models.QuestionList{
		{Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
		{Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3},
	}
	passingScore := 70

	_, score := scoreQuiz(questions, []int{0, 3})
	assert.True(t, score >= passingScore)

	_, score = scoreQuiz(questions, []int{1, 1})
	assert.False(t, score >= passingScore)
}

// An explicit passing_score of 0 is a real (if lenient) threshold; only an
// omitted field falls back to 70.
func TestCreateQuizPassingScore(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	db := testDB(t)

	instructor := models.User{Username: "ina", Email: "ina@example.com", Password: "x", Role: "instructor"}
	require.NoError(t, db.Create(&instructor).Error)
	course := models.Course{Title: "Go Basics", Description: "d", Category: "dev", Level: "beginner", Price: 50, InstructorID: instructor.ID}
	require.NoError(t, db.Create(&course).Error)

	h := NewQuizHandler(db)
	app := fiber.New()
	app.Post("/api/quizzes", middleware.Protected(), h.CreateQuiz)
	token := bearerToken(t, instructor)

	createQuiz := func(t *testing.T, body string) models.Quiz {
		t.Helper()
		req := httptest.NewRequest("POST", "/api/quizzes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var quiz models.Quiz
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&quiz))
		return quiz
	}

	questions := `[{"text":"Q1","options":["a","b"],"correct_answer":0}]`

	t.Run("DefaultsTo70WhenOmitted", func(t *testing.T) {
		quiz := createQuiz(t, fmt.Sprintf(`{"course_id":"%s","title":"No threshold","questions":%s}`, course.ID, questions))
		assert.Equal(t, 70, quiz.PassingScore)
	})

	t.Run("ExplicitZeroKept", func(t *testing.T) {
		quiz := createQuiz(t, fmt.Sprintf(`{"course_id":"%s","title":"Zero threshold","passing_score":0,"questions":%s}`, course.ID, questions))
		assert.Equal(t, 0, quiz.PassingScore)

		var stored models.Quiz
		require.NoError(t, db.First(&stored, "id = ?", quiz.ID).Error)
		assert.Equal(t, 0, stored.PassingScore)
	})
}
