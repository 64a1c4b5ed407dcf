package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/handlers"
	"github.com/kiptoo5489/learnhub/middleware"
)

func EnrollmentRoutes(app *fiber.App, h *handlers.EnrollmentHandler, stats *handlers.StatsHandler) {
	api := app.Group("/api")

	enrollments := api.Group("/enrollments", middleware.Protected())
	enrollments.Post("", h.CreateEnrollment)
	enrollments.Put("/:id/progress", h.UpdateProgress)

	users := api.Group("/users", middleware.Protected())
	users.Get("/:userId/enrollments", h.ListEnrollments)
	users.Get("/:userId/certificates", h.ListCertificates)
	users.Get("/:userId/stats", stats.GetUserStats)
}
