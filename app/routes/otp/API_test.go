package otp

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/config"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/routes/auth"
)

// A token can outlive its student row; the submission must then fail with a
// not-found response rather than a server error.
func TestCheckAttendDeletedStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	config.AppConfig = &config.Config{DB: db, JWTSecret: "test-secret"}

	mock.ExpectQuery("SELECT (.+) FROM students WHERE student_number").
		WithArgs("s404").
		WillReturnError(sql.ErrNoRows)

	app := fiber.New()
	SetupOTPRoutes(app)

	token, err := auth.GenerateJWT("s404", "Ghost", auth.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/check_attend", strings.NewReader(`{"otp_value": 9}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "jwt_token", Value: token})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
