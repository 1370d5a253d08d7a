package services

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
)

// CodeBits is the fixed width of the attendance code. The code is conveyed
// to students over an audio/visual side channel that carries exactly four
// bits, so codes are always in [0, 15] regardless of how the code is later
// displayed.
const CodeBits = 4

const codeMax = 1<<CodeBits - 1

// Note written on results registered through the student app, as opposed to
// a teacher's manual edit.
const appRegisteredNote = "アプリからの出席登録"

var ErrUnknownStudent = errors.New("unknown student")

// GenerateCode returns a uniformly random attendance code in [0, 15].
func GenerateCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax+1))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// RenderBinary renders a code as a 4-character zero-padded binary string,
// e.g. 5 -> "0101".
func RenderBinary(code int) string {
	return fmt.Sprintf("%0*b", CodeBits, code)
}

// ParseBinary is the inverse of RenderBinary.
func ParseBinary(s string) (int, error) {
	v, err := strconv.ParseInt(s, 2, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// StartSession generates a fresh code and persists a new class session
// carrying it. The session date is the server's current date; a period of 0
// or below defaults to 1. Every call creates a new session and the newest
// one is authoritative for matching, so regenerating simply invalidates the
// previous code.
func StartSession(db *sql.DB, classID *int, period int) (*models.ClassSession, string, error) {
	if period <= 0 {
		period = 1
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, "", err
	}

	session := &models.ClassSession{
		ClassID:    classID,
		Date:       time.Now().Format("2006-01-02"),
		Period:     period,
		SoundToken: strconv.Itoa(code),
	}
	session.SessionID, err = database.CreateClassSession(db, classID, session.Date, period, session.SoundToken)
	if err != nil {
		return nil, "", err
	}

	return session, RenderBinary(code), nil
}

// MatchOutcome classifies a code submission. The zero value is not a valid
// outcome; error returns leave it zero.
type MatchOutcome int

const (
	MatchSuccess MatchOutcome = iota + 1
	MatchAlreadyRecorded
	MatchCodeMismatch
	MatchNoActiveSession
)

// CheckAttendance compares a student's decoded code against the session
// currently active for their class and records a presence result on match.
//
// The active session is the newest one scoped to the student's homeroom
// class; sessions started without a class are visible to every student. A
// student whose homeroom label matches no class can only match class-less
// sessions.
//
// A repeated correct submission is absorbed by the (session, student)
// uniqueness constraint and reported as MatchAlreadyRecorded.
func CheckAttendance(db *sql.DB, studentNumber string, submitted int) (MatchOutcome, error) {
	student, err := database.GetStudentByNumber(db, studentNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUnknownStudent
		}
		return 0, err
	}

	var classID *int
	if student.HomeroomClass != "" {
		class, err := database.GetClassByName(db, student.HomeroomClass)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}
		if err == nil {
			classID = &class.ClassID
		}
	}

	session, err := database.GetActiveSession(db, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MatchNoActiveSession, nil
		}
		return 0, err
	}

	expected, err := strconv.Atoi(session.SoundToken)
	if err != nil {
		return 0, fmt.Errorf("session %d has malformed sound_token %q: %w",
			session.SessionID, session.SoundToken, err)
	}
	if submitted != expected {
		return MatchCodeMismatch, nil
	}

	inserted, err := database.InsertAttendanceResult(db, session.SessionID, studentNumber, models.StatusPresent, appRegisteredNote)
	if err != nil {
		return 0, err
	}
	if !inserted {
		return MatchAlreadyRecorded, nil
	}
	return MatchSuccess, nil
}
