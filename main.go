package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"dayflow/config"
	_ "dayflow/docs"
	"dayflow/pkg/mailer"
	"dayflow/repository"
	"dayflow/router"
	"dayflow/seeder"
)

// @title DayFlow API
// @version 1.0
// @description Attendance, leave and payroll backend for the DayFlow workforce app.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()

	config.MongoConnect()
	defer config.DisconnectDB()
	config.InitDatabase()

	m, err := mailer.NewSESMailer(context.Background(), cfg.EmailFrom)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	if !m.Configured() {
		log.Println("Warning: EMAIL_FROM is not set; the OTP endpoints will refuse to send mail")
	}

	app := fiber.New(fiber.Config{
		AppName: "DayFlow API",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	config.SetupCORS(app)

	seeder.SeedUsers(repository.NewUserRepository())

	router.SetupRoutes(app, cfg, m)

	log.Printf("DayFlow API listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
