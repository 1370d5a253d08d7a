package classes

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
)

var validate = validator.New()

func GetClassesAPI(c *fiber.Ctx) error {
	classes, err := database.GetAllClasses(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}

	return c.JSON(fiber.Map{
		"classes": classes,
		"count":   len(classes),
	})
}

func CreateClassAPI(c *fiber.Ctx) error {
	type CreateRequest struct {
		ClassName string `json:"class_name" validate:"required"`
		TeacherID *int   `json:"teacher_id" validate:"omitempty,min=1"`
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request: " + err.Error()})
	}

	class := &models.Class{ClassName: req.ClassName, TeacherID: req.TeacherID}
	if err := database.CreateClass(config.GetDB(), class); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "Class name already exists"})
		}
		log.Printf("create class failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(201).JSON(fiber.Map{"class": class})
}
