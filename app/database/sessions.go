package database

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
)

// Queryer is the subset of *sql.DB / *sql.Tx the session queries need, so the
// upsert path can run inside a single transaction.
type Queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// CreateClassSession inserts one session row and returns its generated id.
func CreateClassSession(q Queryer, classID *int, date string, period int, soundToken string) (int, error) {
	var sessionID int
	query := `INSERT INTO class_sessions (class_id, date, period, sound_token)
			  VALUES ($1, $2, $3, $4) RETURNING session_id`

	err := q.QueryRow(query, classID, date, period, soundToken).Scan(&sessionID)
	return sessionID, err
}

// GetActiveSession returns the newest session visible to a member of the
// given class: the highest session_id whose class_id matches or is NULL
// (sessions started without a class are visible to everyone). A nil classID
// binds as SQL NULL, and class_id = NULL matches nothing, so the same query
// then sees only unassigned sessions.
func GetActiveSession(q Queryer, classID *int) (*models.ClassSession, error) {
	session := &models.ClassSession{}
	query := `SELECT session_id, class_id, to_char(date, 'YYYY-MM-DD'), period, sound_token
			  FROM class_sessions
			  WHERE class_id IS NULL OR class_id = $1
			  ORDER BY session_id DESC LIMIT 1`

	err := q.QueryRow(query, classID).Scan(
		&session.SessionID, &session.ClassID, &session.Date, &session.Period, &session.SoundToken)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionForSlot returns the newest session for (class, date, period).
// Multiple sessions may exist for one slot; the newest anchors manual edits.
func GetSessionForSlot(q Queryer, classID int, date string, period int) (*models.ClassSession, error) {
	session := &models.ClassSession{}
	query := `SELECT session_id, class_id, to_char(date, 'YYYY-MM-DD'), period, sound_token
			  FROM class_sessions
			  WHERE class_id = $1 AND date = $2 AND period = $3
			  ORDER BY session_id DESC LIMIT 1`

	err := q.QueryRow(query, classID, date, period).Scan(
		&session.SessionID, &session.ClassID, &session.Date, &session.Period, &session.SoundToken)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionsWithResults returns the sessions in the date range that have at
// least one result belonging to a student of the given homeroom class.
// Sessions are discovered through their results rather than class_id, since
// homeroom_class and classes.class_name are only linked by convention.
func GetSessionsWithResults(q Queryer, className, startDate, endDate string) ([]*models.ClassSession, error) {
	query := `SELECT DISTINCT cs.session_id, cs.class_id, to_char(cs.date, 'YYYY-MM-DD'), cs.period, cs.sound_token
			  FROM class_sessions cs
			  JOIN attendance_results ar ON ar.session_id = cs.session_id
			  JOIN students s ON s.student_number = ar.student_number
			  WHERE s.homeroom_class = $1 AND cs.date >= $2 AND cs.date <= $3
			  ORDER BY 3, cs.period, cs.session_id`

	rows, err := q.Query(query, className, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.ClassSession
	for rows.Next() {
		session := &models.ClassSession{}
		if err := rows.Scan(
			&session.SessionID, &session.ClassID, &session.Date, &session.Period, &session.SoundToken,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// GetResultsForSessions loads every result for the given sessions in one
// round trip.
func GetResultsForSessions(q Queryer, sessionIDs []int) ([]*models.AttendanceResult, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	query := `SELECT result_id, session_id, student_number, status, note
			  FROM attendance_results WHERE session_id = ANY($1)`

	rows, err := q.Query(query, pq.Array(sessionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.AttendanceResult
	for rows.Next() {
		result := &models.AttendanceResult{}
		if err := rows.Scan(
			&result.ResultID, &result.SessionID, &result.StudentNumber, &result.Status, &result.Note,
		); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// InsertAttendanceResult records a status for (session, student) unless one
// already exists. Returns false when the unique constraint left the existing
// row in place.
func InsertAttendanceResult(q Queryer, sessionID int, studentNumber string, status models.AttendanceStatus, note string) (bool, error) {
	query := `INSERT INTO attendance_results (session_id, student_number, status, note)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (session_id, student_number) DO NOTHING`

	result, err := q.Exec(query, sessionID, studentNumber, status, note)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UpsertAttendanceResult records a status for (session, student), replacing
// the status and note of an existing row. Atomic, so concurrent edits cannot
// produce duplicate rows.
func UpsertAttendanceResult(q Queryer, sessionID int, studentNumber string, status models.AttendanceStatus, note string) error {
	query := `INSERT INTO attendance_results (session_id, student_number, status, note)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (session_id, student_number)
			  DO UPDATE SET status = EXCLUDED.status, note = EXCLUDED.note`

	_, err := q.Exec(query, sessionID, studentNumber, status, note)
	return err
}
