package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

func SetupTeachersRoutes(app *fiber.App) {
	api := app.Group("/api/teachers")
	api.Use(auth.AuthMiddleware, auth.RequireRole(auth.RoleTeacher))
	api.Get("/", GetTeachersAPI)
	api.Post("/", CreateTeacherAPI)
	api.Put("/:teacherId", UpdateTeacherAPI)
	api.Delete("/:teacherId", DeleteTeacherAPI)
}
