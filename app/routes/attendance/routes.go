package attendance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

func SetupAttendanceRoutes(app *fiber.App) {
	// Result page (teacher only)
	page := app.Group("/attendanceResult")
	page.Use(auth.AuthMiddleware, auth.RequireRole(auth.RoleTeacher))
	page.Get("/", AttendanceResultPage)

	// API routes
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware, auth.RequireRole(auth.RoleTeacher))
	api.Get("/grid", GetGridAPI)
	api.Post("/status", UpsertStatusAPI)
	api.Get("/export", ExportCSVAPI)
}
