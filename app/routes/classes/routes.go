package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

func SetupClassesRoutes(app *fiber.App) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware, auth.RequireRole(auth.RoleTeacher))
	api.Get("/", GetClassesAPI)
	api.Post("/", CreateClassAPI)
}
