package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/handlers"
	"github.com/kiptoo5489/learnhub/middleware"
)

func QuizRoutes(app *fiber.App, h *handlers.QuizHandler) {
	api := app.Group("/api")

	quizzes := api.Group("/quizzes")
	quizzes.Post("", middleware.Protected(), middleware.InstructorRequired(), h.CreateQuiz)
	quizzes.Get("/:id", h.GetQuiz)
	quizzes.Post("/:id/attempts", middleware.Protected(), h.SubmitAttempt)
}
