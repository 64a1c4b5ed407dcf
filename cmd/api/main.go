package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/kiptoo5489/learnhub/configs"
	"github.com/kiptoo5489/learnhub/database"
	"github.com/kiptoo5489/learnhub/handlers"
	"github.com/kiptoo5489/learnhub/jobs"
	"github.com/kiptoo5489/learnhub/notifications"
	"github.com/kiptoo5489/learnhub/payments"
	"github.com/kiptoo5489/learnhub/routes"
	"github.com/kiptoo5489/learnhub/services"
	"github.com/robfig/cron/v3"
)

func main() {
	db, err := database.Connect(config.Config("DATABASE_URL"))
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 %v", err)
	}
	database.SeedAdmin(db)
	notifications.InitEmailService()

	c := cron.New()
	c.AddFunc("@hourly", jobs.ReportStalePayments(db))
	go c.Start()

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "LearnHub",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BodyLimit:         100 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	uploadDir := config.ConfigOr("UPLOAD_DIR", "./uploads")
	app.Static("/uploads", uploadDir)

	checkout := payments.NewCheckoutClient()
	intents := payments.NewIntentClient()
	certificates := services.NewCertificateService(db)

	routes.AuthRoutes(app, handlers.NewAuthHandler(db))
	routes.CourseRoutes(app, handlers.NewCourseHandler(db))
	routes.QuizRoutes(app, handlers.NewQuizHandler(db))
	routes.EnrollmentRoutes(app, handlers.NewEnrollmentHandler(db, certificates), handlers.NewStatsHandler(db))
	routes.PaymentRoutes(app, handlers.NewPaymentHandler(db, checkout, intents))
	routes.UploadRoutes(app, handlers.NewUploadHandler(uploadDir))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
