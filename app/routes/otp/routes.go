package otp

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

func SetupOTPRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Use(auth.AuthMiddleware)

	api.Post("/generate_otp", auth.RequireRole(auth.RoleTeacher), GenerateOTPAPI)
	api.Post("/check_attend", auth.RequireRole(auth.RoleStudent), CheckAttendAPI)
}
