package handlers

import (
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kiptoo5489/learnhub/middleware"
	"github.com/kiptoo5489/learnhub/models"
	"gorm.io/gorm"
)

type QuizHandler struct {
	db *gorm.DB
}

func NewQuizHandler(db *gorm.DB) *QuizHandler {
	return &QuizHandler{db: db}
}

type QuizQuestionRequest struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
}

type QuizRequest struct {
	CourseID     string                `json:"course_id" validate:"required,uuid"`
	LessonID     *string               `json:"lesson_id" validate:"omitempty,uuid"`
	Title        string                `json:"title" validate:"required"`
	Description  *string               `json:"description"`
	Questions    []QuizQuestionRequest `json:"questions" validate:"required,min=1,dive"`
	PassingScore *int                  `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
}

func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID, _ := uuid.Parse(req.CourseID)
	var course models.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if !ownsCourse(c, course) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: You do not own this course"})
	}

	questions := make(models.QuestionList, len(req.Questions))
	for i, q := range req.Questions {
		if q.CorrectAnswer >= len(q.Options) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Correct answer index out of range"})
		}
		questions[i] = models.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	passingScore := 70
	if req.PassingScore != nil {
		passingScore = *req.PassingScore
	}

	quiz := models.Quiz{
		CourseID:     courseID,
		Title:        req.Title,
		Description:  req.Description,
		Questions:    questions,
		PassingScore: passingScore,
	}
	if req.LessonID != nil {
		lessonID, _ := uuid.Parse(*req.LessonID)
		quiz.LessonID = &lessonID
	}

	if err := h.db.Create(&quiz).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quiz"})
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	var quiz models.Quiz
	if err := h.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	return c.JSON(quiz)
}

type AttemptRequest struct {
	Answers []int `json:"answers" validate:"required,min=1"`
}

// scoreQuiz counts answers matching the question's correct option index.
// Missing or -1 answers count as wrong. The returned score is the rounded
// percentage of correct answers.
func scoreQuiz(questions models.QuestionList, answers []int) (correct, score int) {
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	if len(questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(questions)) * 100))
	}
	return correct, score
}

func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	quizID := c.Params("id")

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req AttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var quiz models.Quiz
	if err := h.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	_, score := scoreQuiz(quiz.Questions, req.Answers)
	attempt := models.QuizAttempt{
		QuizID:      quiz.ID,
		UserID:      userID,
		Answers:     models.AnswerList(req.Answers),
		Score:       score,
		Passed:      score >= quiz.PassingScore,
		CompletedAt: time.Now(),
	}

	if err := h.db.Create(&attempt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record attempt"})
	}
	return c.JSON(attempt)
}
