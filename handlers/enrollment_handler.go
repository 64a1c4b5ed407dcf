package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kiptoo5489/learnhub/middleware"
	"github.com/kiptoo5489/learnhub/models"
	"github.com/kiptoo5489/learnhub/notifications"
	"github.com/kiptoo5489/learnhub/services"
	"gorm.io/gorm"
)

type EnrollmentHandler struct {
	db           *gorm.DB
	certificates *services.CertificateService
}

func NewEnrollmentHandler(db *gorm.DB, certificates *services.CertificateService) *EnrollmentHandler {
	return &EnrollmentHandler{db: db, certificates: certificates}
}

type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

// CreateEnrollment grants access directly, bypassing payment. The caller can
// only enroll themselves.
func (h *EnrollmentHandler) CreateEnrollment(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req EnrollRequest
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

	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Progress: 0,
	}
	if err := h.db.Create(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create enrollment"})
	}
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

type ProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}

// UpdateProgress sets the enrollment's progress percentage. At exactly 100
// the completion timestamp is set and a certificate is issued, at most once
// per (user, course).
func (h *EnrollmentHandler) UpdateProgress(c *fiber.Ctx) error {
	enrollmentID := c.Params("id")

	var enrollment models.Enrollment
	if err := h.db.First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if callerID != enrollment.UserID && middleware.CurrentRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: Not your enrollment"})
	}

	var req ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var (
		certificate *models.Certificate
		issued      bool
		user        models.User
		course      models.Course
	)
	err = h.db.Transaction(func(tx *gorm.DB) error {
		enrollment.Progress = req.Progress
		if req.Progress == 100 && enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}

		if req.Progress == 100 {
			if err := tx.First(&user, "id = ?", enrollment.UserID).Error; err != nil {
				return err
			}
			if err := tx.First(&course, "id = ?", enrollment.CourseID).Error; err != nil {
				return err
			}
			cert, created, err := h.certificates.Issue(tx, user, course)
			if err != nil {
				return err
			}
			certificate = cert
			issued = created
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update progress"})
	}

	// Side effects wait for the commit; a rolled-back certificate must not
	// produce an email or an artifact.
	if issued {
		go h.certificates.RenderAndUpload(*certificate, user, course)
		go notifications.SendCertificateIssued(user.Username, user.Email, course.Title, certificate.CertificateURL)
	}

	return c.JSON(fiber.Map{
		"enrollment":  enrollment,
		"certificate": certificate,
	})
}

type enrollmentWithCourse struct {
	models.Enrollment
	Course models.Course `json:"course"`
}

func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var enrollments []models.Enrollment
	if err := h.db.Preload("Course").Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list enrollments"})
	}

	out := make([]enrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		out[i] = enrollmentWithCourse{Enrollment: e, Course: e.Course}
	}
	return c.JSON(out)
}

type certificateWithCourse struct {
	models.Certificate
	Course models.Course `json:"course"`
}

func (h *EnrollmentHandler) ListCertificates(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var certificates []models.Certificate
	if err := h.db.Preload("Course").Where("user_id = ?", userID).Find(&certificates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list certificates"})
	}

	out := make([]certificateWithCourse, len(certificates))
	for i, cert := range certificates {
		out[i] = certificateWithCourse{Certificate: cert, Course: cert.Course}
	}
	return c.JSON(out)
}
