package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/middleware"
	"github.com/kiptoo5489/learnhub/models"
	"gorm.io/gorm"
)

type CourseHandler struct {
	db *gorm.DB
}

func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{db: db}
}

type courseResponse struct {
	models.Course
	Instructor *models.InstructorSummary `json:"instructor"`
}

type courseDetailResponse struct {
	models.Course
	Instructor *models.InstructorSummary `json:"instructor"`
	Lessons    []models.Lesson           `json:"lessons"`
	Quizzes    []models.Quiz             `json:"quizzes"`
}

func instructorSummary(u models.User) *models.InstructorSummary {
	return &models.InstructorSummary{ID: u.ID, Username: u.Username}
}

func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	query := h.db.Preload("Instructor").Where("is_published = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list courses"})
	}

	out := make([]courseResponse, len(courses))
	for i, course := range courses {
		out[i] = courseResponse{Course: course, Instructor: instructorSummary(course.Instructor)}
	}
	return c.JSON(out)
}

func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course models.Course
	if err := h.db.Preload("Instructor").First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var lessons []models.Lesson
	h.db.Where("course_id = ?", course.ID).Order("lesson_order asc").Find(&lessons)

	var quizzes []models.Quiz
	h.db.Where("course_id = ?", course.ID).Find(&quizzes)

	return c.JSON(courseDetailResponse{
		Course:     course,
		Instructor: instructorSummary(course.Instructor),
		Lessons:    lessons,
		Quizzes:    quizzes,
	})
}

type CourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Thumbnail   *string `json:"thumbnail"`
	Category    string  `json:"category" validate:"required"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    string  `json:"duration"`
	IsPublished bool    `json:"is_published"`
}

// CreateCourse takes the owning instructor from the token, never from the
// payload.
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	instructorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	course := models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		Category:     req.Category,
		Level:        req.Level,
		Price:        req.Price,
		Duration:     req.Duration,
		InstructorID: instructorID,
		IsPublished:  req.IsPublished,
	}
	if err := h.db.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

type CourseUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Category    *string  `json:"category"`
	Level       *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    *string  `json:"duration"`
	IsPublished *bool    `json:"is_published"`
}

func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course models.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	if !ownsCourse(c, course) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: You do not own this course"})
	}

	var req CourseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Thumbnail != nil {
		course.Thumbnail = req.Thumbnail
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := h.db.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}
	return c.JSON(course)
}

func (h *CourseHandler) ListLessons(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var lessons []models.Lesson
	if err := h.db.Where("course_id = ?", courseID).Order("lesson_order asc").Find(&lessons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list lessons"})
	}
	return c.JSON(lessons)
}

type LessonRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
	Duration    *string `json:"duration"`
	Order       *int    `json:"order" validate:"omitempty,gte=0"`
}

func (h *CourseHandler) CreateLesson(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := h.db.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	if !ownsCourse(c, course) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: You do not own this course"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var order int
	if req.Order != nil {
		order = *req.Order
	} else {
		var maxOrder int
		h.db.Model(&models.Lesson{}).
			Where("course_id = ?", course.ID).
			Select("COALESCE(MAX(lesson_order), 0)").Scan(&maxOrder)
		order = maxOrder + 1
	}

	lesson := models.Lesson{
		CourseID:    course.ID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Duration:    req.Duration,
		Order:       order,
	}
	if err := h.db.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson"})
	}

	return c.Status(fiber.StatusCreated).JSON(lesson)
}

// ownsCourse reports whether the caller owns the course or holds the admin
// role.
func ownsCourse(c *fiber.Ctx, course models.Course) bool {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return false
	}
	return callerID == course.InstructorID || middleware.CurrentRole(c) == "admin"
}
