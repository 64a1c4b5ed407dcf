package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/models"
	"github.com/kiptoo5489/learnhub/services"
	"gorm.io/gorm"
)

type StatsHandler struct {
	db *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

func (h *StatsHandler) GetUserStats(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var enrollments []models.Enrollment
	if err := h.db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load enrollments"})
	}

	var certificateCount int64
	h.db.Model(&models.Certificate{}).Where("user_id = ?", userID).Count(&certificateCount)

	var attempts []models.QuizAttempt
	h.db.Where("user_id = ?", userID).Find(&attempts)

	return c.JSON(services.ComputeUserStats(enrollments, int(certificateCount), attempts))
}
