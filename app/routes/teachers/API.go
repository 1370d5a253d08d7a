package teachers

import (
	"database/sql"
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

var validate = validator.New()

func GetTeachersAPI(c *fiber.Ctx) error {
	teachers, err := database.GetAllTeachers(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}

	return c.JSON(fiber.Map{
		"teachers": teachers,
		"count":    len(teachers),
	})
}

func CreateTeacherAPI(c *fiber.Ctx) error {
	type CreateRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request: " + err.Error()})
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	teacher := &models.Teacher{Name: req.Name, Email: req.Email, Password: hashed}
	if err := database.CreateTeacher(config.GetDB(), teacher); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "Email already registered"})
		}
		log.Printf("create teacher failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	teacher.Password = ""
	return c.Status(201).JSON(fiber.Map{"teacher": teacher})
}

func UpdateTeacherAPI(c *fiber.Ctx) error {
	teacherID, err := strconv.Atoi(c.Params("teacherId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	type UpdateRequest struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request: " + err.Error()})
	}

	teacher := &models.Teacher{TeacherID: teacherID, Name: req.Name, Email: req.Email}
	if err := database.UpdateTeacher(config.GetDB(), teacher); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
		}
		log.Printf("update teacher failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update teacher"})
	}

	return c.JSON(fiber.Map{"message": "Teacher updated"})
}

func DeleteTeacherAPI(c *fiber.Ctx) error {
	teacherID, err := strconv.Atoi(c.Params("teacherId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	// A teacher cannot remove their own account while logged in with it.
	if identity := auth.CurrentIdentity(c); identity != nil && identity.UserID == c.Params("teacherId") {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot delete the account you are logged in with"})
	}

	if err := database.DeleteTeacher(config.GetDB(), teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
		}
		log.Printf("delete teacher failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete teacher"})
	}

	return c.JSON(fiber.Map{"message": "Teacher deleted"})
}
