package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	page := app.Group("/students")
	page.Use(auth.AuthMiddleware, auth.RequireRole(auth.RoleTeacher))
	page.Get("/", StudentsPage)

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware, auth.RequireRole(auth.RoleTeacher))
	api.Get("/", GetStudentsAPI)
	api.Post("/", CreateStudentAPI)
	api.Put("/:studentNumber", UpdateStudentAPI)
	api.Delete("/:studentNumber", DeleteStudentAPI)
}
