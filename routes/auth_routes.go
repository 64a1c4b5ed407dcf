package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/handlers"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
}
