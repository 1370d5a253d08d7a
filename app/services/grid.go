package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/database"
	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
)

// PeriodsPerDay fixes the grid's period axis at 1..4. The grid always shows
// all four slots whether or not a session exists for them.
const PeriodsPerDay = 4

var (
	ErrClassNotFound = errors.New("class not found")
	ErrDateFormat    = errors.New("invalid date format, want YYYY-MM-DD")
	ErrInvalidStatus = errors.New("invalid attendance status")
)

// PeriodStatus is one grid cell: the period slot with its display
// classification. Note is carried for the CSV export; the result page does
// not show it.
type PeriodStatus struct {
	Period int    `json:"period"`
	Class  string `json:"class"`
	Text   string `json:"text"`
	Note   string `json:"note,omitempty"`
}

// StudentRow is one roster entry with its reconciled day-by-day statuses,
// keyed by YYYY-MM-DD and ordered by period within each day.
type StudentRow struct {
	Number        int                       `json:"number"`
	StudentNumber string                    `json:"student_number"`
	Name          string                    `json:"name"`
	Dates         map[string][]PeriodStatus `json:"dates"`
}

// Grid is the dense student × date × period attendance view backing both the
// result page and the CSV export.
type Grid struct {
	ClassName string       `json:"class_name"`
	Dates     []string     `json:"dates"`
	Students  []StudentRow `json:"students"`
}

// DateRange expands an inclusive [start, end] range into the list of
// calendar dates, ascending. An end before start yields an empty range, not
// an error; malformed input yields ErrDateFormat.
func DateRange(startDate, endDate string) ([]string, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, ErrDateFormat
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, ErrDateFormat
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, nil
}

// BuildGrid reconciles the sparse attendance rows of a class into a dense
// grid over the date range. Pure read: it never writes.
//
// Sessions enter the grid when a roster student has a result for them, not
// via their class_id; the homeroom_class/class_name linkage is by name only
// and cannot be trusted for the join.
func BuildGrid(db *sql.DB, className, startDate, endDate string) (*Grid, error) {
	dates, err := DateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	roster, err := database.GetStudentsByHomeroom(db, className)
	if err != nil {
		return nil, err
	}

	var sessions []*models.ClassSession
	var results []*models.AttendanceResult
	if len(dates) > 0 && len(roster) > 0 {
		sessions, err = database.GetSessionsWithResults(db, className, startDate, endDate)
		if err != nil {
			return nil, err
		}
		ids := make([]int, len(sessions))
		for i, s := range sessions {
			ids[i] = s.SessionID
		}
		results, err = database.GetResultsForSessions(db, ids)
		if err != nil {
			return nil, err
		}
	}

	return assembleGrid(className, roster, dates, sessions, results), nil
}

type slotKey struct {
	date   string
	period int
}

type resultKey struct {
	sessionID     int
	studentNumber string
}

// assembleGrid builds the dense grid from already-fetched rows. Sessions
// sharing a (date, period) slot collapse to the newest one.
func assembleGrid(className string, roster []*models.Student, dates []string,
	sessions []*models.ClassSession, results []*models.AttendanceResult) *Grid {

	sessionBySlot := make(map[slotKey]int, len(sessions))
	for _, s := range sessions {
		// Sessions arrive ordered by ascending session_id within a slot, so
		// the last write keeps the newest.
		sessionBySlot[slotKey{s.Date, s.Period}] = s.SessionID
	}

	resultByKey := make(map[resultKey]*models.AttendanceResult, len(results))
	for _, r := range results {
		resultByKey[resultKey{r.SessionID, r.StudentNumber}] = r
	}

	noData := models.StatusNoData.Display()

	grid := &Grid{
		ClassName: className,
		Dates:     dates,
		Students:  make([]StudentRow, 0, len(roster)),
	}
	for _, student := range roster {
		row := StudentRow{
			Number:        student.AttendanceNo,
			StudentNumber: student.StudentNumber,
			Name:          student.Name,
			Dates:         make(map[string][]PeriodStatus, len(dates)),
		}
		for _, date := range dates {
			slots := make([]PeriodStatus, 0, PeriodsPerDay)
			for period := 1; period <= PeriodsPerDay; period++ {
				cell := PeriodStatus{Period: period, Class: noData.Class, Text: noData.Label}

				if sessionID, ok := sessionBySlot[slotKey{date, period}]; ok {
					// A session without a result for this student stays
					// no-data: absence is only ever an explicit record.
					if result, ok := resultByKey[resultKey{sessionID, student.StudentNumber}]; ok {
						display := result.Status.Display()
						cell.Class = display.Class
						cell.Text = display.Label
						cell.Note = result.Note
					}
				}
				slots = append(slots, cell)
			}
			row.Dates[date] = slots
		}
		grid.Students = append(grid.Students, row)
	}
	return grid
}

// UpsertStatus records or replaces a manually-entered status for one grid
// cell. When no session exists for (class, date, period) one is created with
// the sentinel token "0000" purely to anchor the result; session creation
// and the result write commit or fail together.
func UpsertStatus(db *sql.DB, className, studentNumber, date string, period int, status models.AttendanceStatus, note string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrDateFormat
	}
	if period < 1 || period > PeriodsPerDay {
		return errors.New("period out of range")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	class, err := database.GetClassByName(tx, className)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClassNotFound
		}
		return err
	}

	session, err := database.GetSessionForSlot(tx, class.ClassID, date, period)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		sessionID, err := database.CreateClassSession(tx, &class.ClassID, date, period, "0000")
		if err != nil {
			return err
		}
		session = &models.ClassSession{SessionID: sessionID}
	}

	if err := database.UpsertAttendanceResult(tx, session.SessionID, studentNumber, status, note); err != nil {
		return err
	}
	return tx.Commit()
}
