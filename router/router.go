package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"dayflow/config"
	"dayflow/config/middleware"
	"dayflow/handlers"
	"dayflow/pkg/mailer"
	"dayflow/pkg/paseto"
	"dayflow/repository"
)

// SetupRoutes wires repositories, handlers and middleware onto the app.
func SetupRoutes(app *fiber.App, cfg *config.AppConfig, m mailer.Mailer) {
	maker, err := paseto.NewPasetoMaker(cfg.PasetoSecret)
	if err != nil {
		log.Fatalf("Failed to initialize PASETO maker: %v", err)
	}

	userRepo := repository.NewUserRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	leaveRepo := repository.NewLeaveRequestRepository(attendanceRepo)
	payrollRepo := repository.NewPayrollRepository(userRepo)
	otpRepo := repository.NewOTPRepository()

	authHandler := handlers.NewAuthHandler(userRepo, otpRepo, maker, m)
	userHandler := handlers.NewUserHandler(userRepo, attendanceRepo, leaveRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, userRepo)
	leaveHandler := handlers.NewLeaveRequestHandler(leaveRepo, userRepo)
	payrollHandler := handlers.NewPayrollHandler(payrollRepo)

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// The OTP endpoints live at the root, where the password-reset frontend
	// expects them.
	app.Post("/send-otp", authHandler.SendOTP)
	app.Post("/verify-otp", authHandler.VerifyOTP)

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/logout", middleware.AuthMiddleware(maker), authHandler.Logout)
	auth.Post("/change-password", middleware.AuthMiddleware(maker), authHandler.ChangePassword)

	users := api.Group("/users", middleware.AuthMiddleware(maker))
	users.Get("/:id", userHandler.GetUserByID)
	users.Get("/:id/badge", userHandler.GetBadge)

	attendance := api.Group("/attendance", middleware.AuthMiddleware(maker))
	attendance.Post("/check-in", attendanceHandler.CheckIn)
	attendance.Post("/check-out", attendanceHandler.CheckOut)
	attendance.Get("/status", attendanceHandler.MyStatus)
	attendance.Get("/my", attendanceHandler.MyHistory)
	attendance.Get("/week", attendanceHandler.ByWeek)
	attendance.Get("/month", attendanceHandler.ByMonth)
	attendance.Get("/summary/week", attendanceHandler.WeeklySummary)
	attendance.Get("/summary/month", attendanceHandler.MonthlySummary)
	attendance.Get("/stream", attendanceHandler.Stream)

	leave := api.Group("/leave-requests", middleware.AuthMiddleware(maker))
	leave.Post("/", leaveHandler.Create)
	leave.Get("/my", leaveHandler.My)
	leave.Get("/balance", leaveHandler.Balance)

	payroll := api.Group("/payroll", middleware.AuthMiddleware(maker))
	payroll.Get("/me", payrollHandler.GetMine)

	admin := api.Group("/admin", middleware.AuthMiddleware(maker), middleware.AdminMiddleware())
	admin.Get("/users", userHandler.GetAllUsers)
	admin.Put("/users/:id", userHandler.UpdateUser)
	admin.Delete("/users/:id", userHandler.DeleteUser)
	admin.Get("/dashboard-stats", userHandler.GetDashboardStats)
	admin.Get("/attendance/today", attendanceHandler.Today)
	admin.Get("/attendance/active", attendanceHandler.ActiveClockIns)
	admin.Get("/leave-requests", leaveHandler.Pending)
	admin.Get("/leave-requests/decisions", leaveHandler.Decisions)
	admin.Put("/leave-requests/:id/status", leaveHandler.Decide)
	admin.Get("/payroll", payrollHandler.GetAll)
	admin.Get("/payroll/:employeeId", payrollHandler.GetOne)
	admin.Put("/payroll/:employeeId/salary-structure", payrollHandler.UpdateSalaryStructure)
	admin.Get("/payroll/:employeeId/history", payrollHandler.SalaryHistory)

	log.Println("Routes registered: auth, users, attendance, leave-requests, payroll, admin")
}
