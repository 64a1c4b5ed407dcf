package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/handlers"
	"github.com/kiptoo5489/learnhub/middleware"
)

func CourseRoutes(app *fiber.App, h *handlers.CourseHandler) {
	api := app.Group("/api")

	courses := api.Group("/courses")
	courses.Get("", h.ListCourses)
	courses.Get("/:id", h.GetCourse)
	courses.Post("", middleware.Protected(), middleware.InstructorRequired(), h.CreateCourse)
	courses.Put("/:id", middleware.Protected(), middleware.InstructorRequired(), h.UpdateCourse)

	courses.Get("/:courseId/lessons", h.ListLessons)
	courses.Post("/:courseId/lessons", middleware.Protected(), middleware.InstructorRequired(), h.CreateLesson)
}
