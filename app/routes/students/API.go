package students

import (
	"database/sql"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

var validate = validator.New()

func StudentsPage(c *fiber.Ctx) error {
	students, err := database.GetAllStudents(config.GetDB())
	if err != nil {
		log.Printf("students page failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}

	classes, err := database.GetAllClasses(config.GetDB())
	if err != nil {
		log.Printf("students page failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load classes")
	}

	return c.Render("students/index", fiber.Map{
		"Title":    "生徒管理 - Cocone Attendance",
		"Students": students,
		"Classes":  classes,
	})
}

func GetStudentsAPI(c *fiber.Ctx) error {
	className := c.Query("class_name")

	var (
		students []*models.Student
		err      error
	)
	if className != "" {
		students, err = database.GetStudentsByHomeroom(config.GetDB(), className)
	} else {
		students, err = database.GetAllStudents(config.GetDB())
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	type CreateRequest struct {
		StudentNumber string `json:"student_number" validate:"required"`
		Name          string `json:"name" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		Password      string `json:"password" validate:"required,min=8"`
		HomeroomClass string `json:"homeroom_class"`
		AttendanceNo  int    `json:"attendance_no" validate:"min=0"`
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

	student := &models.Student{
		StudentNumber: req.StudentNumber,
		Name:          req.Name,
		Email:         req.Email,
		Password:      hashed,
		HomeroomClass: req.HomeroomClass,
		AttendanceNo:  req.AttendanceNo,
	}
	if err := database.CreateStudent(config.GetDB(), student); err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "Student number or email already registered"})
		}
		log.Printf("create student failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	student.Password = ""
	return c.Status(201).JSON(fiber.Map{"student": student})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	studentNumber := c.Params("studentNumber")
	if studentNumber == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student number is required"})
	}

	type UpdateRequest struct {
		Name          string `json:"name" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		HomeroomClass string `json:"homeroom_class"`
		AttendanceNo  int    `json:"attendance_no" validate:"min=0"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request: " + err.Error()})
	}

	student := &models.Student{
		StudentNumber: studentNumber,
		Name:          req.Name,
		Email:         req.Email,
		HomeroomClass: req.HomeroomClass,
		AttendanceNo:  req.AttendanceNo,
	}
	if err := database.UpdateStudent(config.GetDB(), student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		log.Printf("update student failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{"message": "Student updated"})
}

// DeleteStudentAPI removes a student; their attendance results cascade away
// with the row.
func DeleteStudentAPI(c *fiber.Ctx) error {
	studentNumber := c.Params("studentNumber")
	if studentNumber == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student number is required"})
	}

	if err := database.DeleteStudent(config.GetDB(), studentNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		log.Printf("delete student failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"message": "Student deleted"})
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
