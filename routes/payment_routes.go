package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kiptoo5489/learnhub/handlers"
	"github.com/kiptoo5489/learnhub/middleware"
)

func PaymentRoutes(app *fiber.App, h *handlers.PaymentHandler) {
	api := app.Group("/api")

	api.Post("/create-order", middleware.Protected(), h.CreateOrder)
	api.Post("/verify-payment", h.VerifyPayment)

	api.Post("/create-payment-intent", middleware.Protected(), h.CreatePaymentIntent)
	api.Post("/payments/confirm", h.ConfirmPayment)
}
