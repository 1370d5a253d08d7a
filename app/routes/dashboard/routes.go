package dashboard

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/teacher", auth.AuthMiddleware, auth.RequireRole(auth.RoleTeacher), TeacherPage)
	app.Get("/student", auth.AuthMiddleware, auth.RequireRole(auth.RoleStudent), StudentPage)
}

// TeacherPage renders the OTP generation screen: pick a class and period,
// start a session, play the code.
func TeacherPage(c *fiber.Ctx) error {
	identity := auth.CurrentIdentity(c)

	classes, err := database.GetAllClasses(config.GetDB())
	if err != nil {
		log.Printf("teacher page failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load classes")
	}

	return c.Render("dashboard/teacher", fiber.Map{
		"Title":   "教師画面 - Cocone Attendance",
		"Name":    identity.Name,
		"Classes": classes,
	})
}

// StudentPage renders the code submission screen.
func StudentPage(c *fiber.Ctx) error {
	identity := auth.CurrentIdentity(c)

	return c.Render("dashboard/student", fiber.Map{
		"Title":         "生徒画面 - Cocone Attendance",
		"Name":          identity.Name,
		"StudentNumber": identity.UserID,
	})
}
