package auth

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
)

// LoginAPI authenticates a student (by student number) or a teacher (by
// email), depending on the requested role.
func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Role          string `json:"role"`
		StudentNumber string `json:"student_number"`
		Email         string `json:"email"`
		Password      string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	var (
		userID, name, storedHash string
	)
	switch req.Role {
	case RoleStudent:
		student, err := database.GetStudentByNumber(config.GetDB(), req.StudentNumber)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		userID, name, storedHash = student.StudentNumber, student.Name, student.Password
	case RoleTeacher:
		teacher, err := database.GetTeacherByEmail(config.GetDB(), req.Email)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
			}
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		userID, name, storedHash = strconv.Itoa(teacher.TeacherID), teacher.Name, teacher.Password
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown role"})
	}

	if !CheckPasswordHash(req.Password, storedHash) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(userID, name, req.Role)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})

	redirect := "/student"
	if req.Role == RoleTeacher {
		redirect = "/teacher"
	}
	return c.JSON(fiber.Map{
		"message":  "Login successful",
		"name":     name,
		"role":     req.Role,
		"redirect": redirect,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Redirect("/auth/login")
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}

	identity := CurrentIdentity(c)
	if identity == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	db := config.GetDB()
	switch identity.Role {
	case RoleStudent:
		student, err := database.GetStudentByNumber(db, identity.UserID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		if !CheckPasswordHash(req.CurrentPassword, student.Password) {
			return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
		}
		hashed, err := HashPassword(req.NewPassword)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
		}
		if err := database.UpdateStudentPassword(db, identity.UserID, hashed); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
		}
	case RoleTeacher:
		teacherID, err := strconv.Atoi(identity.UserID)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid identity"})
		}
		teacher, err := database.GetTeacherByID(db, teacherID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		if !CheckPasswordHash(req.CurrentPassword, teacher.Password) {
			return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
		}
		hashed, err := HashPassword(req.NewPassword)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
		}
		if err := database.UpdateTeacherPassword(db, teacherID, hashed); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
		}
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown role"})
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}
