package otp

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/services"
)

var validate = validator.New()

// GenerateOTPAPI starts a class session with a fresh 4-bit code. The binary
// form is what the teacher page encodes into the audio signal; the decimal
// form is shown on screen for manual entry.
func GenerateOTPAPI(c *fiber.Ctx) error {
	type GenerateRequest struct {
		ClassID *int `json:"class_id" validate:"omitempty,min=1"`
		Period  int  `json:"period" validate:"omitempty,min=1,max=4"`
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request: " + err.Error()})
	}

	session, binary, err := services.StartSession(config.GetDB(), req.ClassID, req.Period)
	if err != nil {
		log.Printf("generate_otp failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to start session"})
	}

	return c.JSON(fiber.Map{
		"session_id":  session.SessionID,
		"otp_binary":  binary,
		"otp_display": session.SoundToken,
	})
}

// CheckAttendAPI matches a student's decoded code against the active session
// for their class. The response never includes the expected code.
func CheckAttendAPI(c *fiber.Ctx) error {
	type CheckRequest struct {
		OTPValue *int `json:"otp_value" validate:"required"`
	}

	var req CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "otp_value is required"})
	}

	identity := auth.CurrentIdentity(c)
	if identity == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	outcome, err := services.CheckAttendance(config.GetDB(), identity.UserID, *req.OTPValue)
	if err != nil {
		// A valid token whose student row has since been deleted.
		if errors.Is(err, services.ErrUnknownStudent) {
			return c.Status(404).JSON(fiber.Map{"status": "error", "message": "生徒情報が見つかりません"})
		}
		log.Printf("check_attend failed for %s: %v", identity.UserID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check attendance"})
	}

	switch outcome {
	case services.MatchSuccess:
		return c.JSON(fiber.Map{"status": "success", "message": "出席完了！"})
	case services.MatchAlreadyRecorded:
		return c.JSON(fiber.Map{"status": "success", "message": "すでに出席登録済みです"})
	case services.MatchNoActiveSession:
		return c.Status(404).JSON(fiber.Map{"status": "error", "message": "現在出席を受け付けている授業はありません"})
	default:
		return c.Status(400).JSON(fiber.Map{"status": "error", "message": "コードが違います"})
	}
}
