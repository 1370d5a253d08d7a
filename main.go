package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/attendance"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/classes"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/dashboard"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/otp"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/students"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/teachers"
)

// customErrorHandler renders web errors through templates and keeps API
// errors as JSON.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 401:
		return c.Redirect("/auth/login")
	case 404:
		return c.Status(404).Render("error", fiber.Map{
			"Title":        "ページが見つかりません - Cocone Attendance",
			"ErrorCode":    "404",
			"ErrorMessage": "お探しのページは見つかりませんでした。",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "エラー - Cocone Attendance",
			"ErrorCode":    code,
			"ErrorMessage": "エラーが発生しました。時間をおいて再度お試しください。",
		})
	}
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize template engine
	engine := html.New("./app/templates", ".html")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Static files (audio encode/decode glue for the OTP pages)
	app.Static("/static", "./static")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	otp.SetupOTPRoutes(app)
	attendance.SetupAttendanceRoutes(app)
	students.SetupStudentsRoutes(app)
	teachers.SetupTeachersRoutes(app)
	classes.SetupClassesRoutes(app)

	addr := ":" + config.AppConfig.AppPort
	log.Printf("server listening at %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
