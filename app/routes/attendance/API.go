package attendance

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/services"
)

var validate = validator.New()

// AttendanceResultPage renders the reconciled grid for a class and date
// range. Missing filters show an in-page error rather than failing the
// request.
func AttendanceResultPage(c *fiber.Ctx) error {
	className := c.Query("class_name")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if className == "" || startDate == "" || endDate == "" {
		return c.Render("attendance/result", fiber.Map{
			"Title": "出欠席結果 - Cocone Attendance",
			"Error": "検索条件が不足しています",
		})
	}

	grid, err := services.BuildGrid(config.GetDB(), className, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrDateFormat) {
			return c.Render("attendance/result", fiber.Map{
				"Title": "出欠席結果 - Cocone Attendance",
				"Error": "日付の形式が正しくありません (YYYY-MM-DD)",
			})
		}
		log.Printf("attendanceResult failed: %v", err)
		return c.Render("attendance/result", fiber.Map{
			"Title": "出欠席結果 - Cocone Attendance",
			"Error": "データ取得中にエラーが発生しました",
		})
	}

	return c.Render("attendance/result", fiber.Map{
		"Title":     "出欠席結果 - Cocone Attendance",
		"ClassName": className,
		"StartDate": startDate,
		"EndDate":   endDate,
		"Grid":      grid,
		"Statuses":  models.StorableStatuses(),
	})
}

// GetGridAPI returns the same grid as JSON.
func GetGridAPI(c *fiber.Ctx) error {
	className := c.Query("class_name")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if className == "" || startDate == "" || endDate == "" {
		return c.Status(400).JSON(fiber.Map{"error": "class_name, start_date and end_date are required"})
	}

	grid, err := services.BuildGrid(config.GetDB(), className, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrDateFormat) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}
		log.Printf("attendance grid failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build attendance grid"})
	}

	return c.JSON(grid)
}

// UpsertStatusAPI records or replaces a manually-entered status for one
// (student, date, period) cell.
func UpsertStatusAPI(c *fiber.Ctx) error {
	type UpsertRequest struct {
		ClassName     string `json:"class_name" validate:"required"`
		StudentNumber string `json:"student_number" validate:"required"`
		Date          string `json:"date" validate:"required"`
		Period        int    `json:"period" validate:"required,min=1,max=4"`
		Status        string `json:"status" validate:"required"`
		Note          string `json:"note"`
	}

	var req UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request: " + err.Error()})
	}

	err := services.UpsertStatus(config.GetDB(), req.ClassName, req.StudentNumber,
		req.Date, req.Period, models.AttendanceStatus(req.Status), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClassNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "指定されたクラスが見つかりません"})
		case errors.Is(err, services.ErrDateFormat):
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(400).JSON(fiber.Map{"error": "Invalid status value"})
		default:
			log.Printf("upsert status failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save attendance status"})
		}
	}

	return c.JSON(fiber.Map{"message": "Attendance status saved"})
}

// ExportCSVAPI streams the grid as a UTF-8 (BOM) CSV download.
func ExportCSVAPI(c *fiber.Ctx) error {
	className := c.Query("class_name")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if className == "" || startDate == "" || endDate == "" {
		return c.Status(400).JSON(fiber.Map{"error": "class_name, start_date and end_date are required"})
	}

	grid, err := services.BuildGrid(config.GetDB(), className, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrDateFormat) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}
		log.Printf("attendance export failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build attendance grid"})
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.csv", className, startDate, endDate)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	if err := services.WriteCSV(c.Response().BodyWriter(), grid); err != nil {
		log.Printf("attendance export write failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to write CSV"})
	}
	return nil
}
