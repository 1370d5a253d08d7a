package services

import (
	"database/sql"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
)

func TestBinaryCodecRoundTrip(t *testing.T) {
	for code := 0; code <= 15; code++ {
		s := RenderBinary(code)
		if len(s) != 4 {
			t.Fatalf("RenderBinary(%d) = %q, want 4 characters", code, s)
		}
		for _, c := range s {
			if c != '0' && c != '1' {
				t.Fatalf("RenderBinary(%d) = %q, want only 0/1", code, s)
			}
		}
		back, err := ParseBinary(s)
		if err != nil {
			t.Fatalf("ParseBinary(%q): %v", s, err)
		}
		if back != code {
			t.Fatalf("round trip %d -> %q -> %d", code, s, back)
		}
	}
}

func TestRenderBinaryZeroPadding(t *testing.T) {
	if got := RenderBinary(5); got != "0101" {
		t.Fatalf("RenderBinary(5) = %q, want 0101", got)
	}
	if got := RenderBinary(0); got != "0000" {
		t.Fatalf("RenderBinary(0) = %q, want 0000", got)
	}
	if got := RenderBinary(15); got != "1111" {
		t.Fatalf("RenderBinary(15) = %q, want 1111", got)
	}
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if code < 0 || code > 15 {
			t.Fatalf("GenerateCode = %d, want [0,15]", code)
		}
	}
}

func TestStartSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO class_sessions").
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}).AddRow(42))

	session, binary, err := StartSession(db, nil, 0)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if session.SessionID != 42 {
		t.Fatalf("session id = %d, want 42", session.SessionID)
	}
	if session.Period != 1 {
		t.Fatalf("period = %d, want default 1", session.Period)
	}
	if session.Date != time.Now().Format("2006-01-02") {
		t.Fatalf("date = %q, want today", session.Date)
	}

	code, err := strconv.Atoi(session.SoundToken)
	if err != nil {
		t.Fatalf("sound_token %q is not decimal: %v", session.SoundToken, err)
	}
	if got := RenderBinary(code); got != binary {
		t.Fatalf("binary %q does not match stored code %d (%q)", binary, code, got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func expectStudentLookup(mock sqlmock.Sqlmock, studentNumber, homeroom string) {
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM students WHERE student_number").
		WithArgs(studentNumber).
		WillReturnRows(sqlmock.NewRows([]string{
			"student_number", "name", "email", "password", "homeroom_class", "attendance_no", "created_at", "updated_at",
		}).AddRow(studentNumber, "Taro", studentNumber+"@example.com", "x", homeroom, 1, now, now))
}

func expectClassLookup(mock sqlmock.Sqlmock, className string, classID int) {
	mock.ExpectQuery("SELECT (.+) FROM classes WHERE class_name").
		WithArgs(className).
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "class_name", "teacher_id"}).
			AddRow(classID, className, nil))
}

func expectActiveSession(mock sqlmock.Sqlmock, classID, sessionID int, token string) {
	mock.ExpectQuery("SELECT (.+) FROM class_sessions").
		WithArgs(classID).
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "class_id", "date", "period", "sound_token"}).
			AddRow(sessionID, classID, "2024-04-10", 1, token))
}

func TestCheckAttendanceSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectStudentLookup(mock, "s001", "1-A")
	expectClassLookup(mock, "1-A", 7)
	expectActiveSession(mock, 7, 42, "9")
	mock.ExpectExec("INSERT INTO attendance_results").
		WithArgs(42, "s001", string(models.StatusPresent), appRegisteredNote).
		WillReturnResult(sqlmock.NewResult(1, 1))

	outcome, err := CheckAttendance(db, "s001", 9)
	if err != nil {
		t.Fatalf("CheckAttendance: %v", err)
	}
	if outcome != MatchSuccess {
		t.Fatalf("outcome = %v, want MatchSuccess", outcome)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCheckAttendanceMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectStudentLookup(mock, "s002", "1-A")
	expectClassLookup(mock, "1-A", 7)
	expectActiveSession(mock, 7, 42, "9")

	outcome, err := CheckAttendance(db, "s002", 3)
	if err != nil {
		t.Fatalf("CheckAttendance: %v", err)
	}
	if outcome != MatchCodeMismatch {
		t.Fatalf("outcome = %v, want MatchCodeMismatch", outcome)
	}

	// No insert may have happened on a mismatch.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCheckAttendanceNoActiveSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectStudentLookup(mock, "s001", "1-A")
	expectClassLookup(mock, "1-A", 7)
	mock.ExpectQuery("SELECT (.+) FROM class_sessions").
		WithArgs(7).
		WillReturnError(sql.ErrNoRows)

	outcome, err := CheckAttendance(db, "s001", 9)
	if err != nil {
		t.Fatalf("CheckAttendance: %v", err)
	}
	if outcome != MatchNoActiveSession {
		t.Fatalf("outcome = %v, want MatchNoActiveSession", outcome)
	}
}

func TestCheckAttendanceDuplicateSubmission(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expectStudentLookup(mock, "s001", "1-A")
	expectClassLookup(mock, "1-A", 7)
	expectActiveSession(mock, 7, 42, "9")
	// Conflict on (session_id, student_number): zero rows affected.
	mock.ExpectExec("INSERT INTO attendance_results").
		WithArgs(42, "s001", string(models.StatusPresent), appRegisteredNote).
		WillReturnResult(sqlmock.NewResult(0, 0))

	outcome, err := CheckAttendance(db, "s001", 9)
	if err != nil {
		t.Fatalf("CheckAttendance: %v", err)
	}
	if outcome != MatchAlreadyRecorded {
		t.Fatalf("outcome = %v, want MatchAlreadyRecorded", outcome)
	}
}

func TestCheckAttendanceDeletedStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM students WHERE student_number").
		WithArgs("s404").
		WillReturnError(sql.ErrNoRows)

	outcome, err := CheckAttendance(db, "s404", 9)
	if !errors.Is(err, ErrUnknownStudent) {
		t.Fatalf("err = %v, want ErrUnknownStudent", err)
	}
	if outcome == MatchSuccess {
		t.Fatalf("outcome = %v, must not be MatchSuccess on error", outcome)
	}
}

func TestCheckAttendanceUnknownHomeroom(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// Homeroom label resolves to no class: only class-less sessions apply.
	expectStudentLookup(mock, "s009", "9-Z")
	mock.ExpectQuery("SELECT (.+) FROM classes WHERE class_name").
		WithArgs("9-Z").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM class_sessions").
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "class_id", "date", "period", "sound_token"}).
			AddRow(42, nil, "2024-04-10", 1, "9"))
	mock.ExpectExec("INSERT INTO attendance_results").
		WillReturnResult(sqlmock.NewResult(1, 1))

	outcome, err := CheckAttendance(db, "s009", 9)
	if err != nil {
		t.Fatalf("CheckAttendance: %v", err)
	}
	if outcome != MatchSuccess {
		t.Fatalf("outcome = %v, want MatchSuccess", outcome)
	}
}
