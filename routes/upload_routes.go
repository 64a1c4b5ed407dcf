package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/handlers"
	"github.com/kiptoo5489/learnhub/middleware"
)

func UploadRoutes(app *fiber.App, h *handlers.UploadHandler) {
	api := app.Group("/api")

	api.Post("/upload/video", middleware.Protected(), h.UploadVideo)
	api.Get("/uploads/signature", middleware.Protected(), h.GenerateUploadSignature)
}
