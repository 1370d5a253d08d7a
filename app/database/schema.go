package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema when missing and applies incremental
// updates. Safe to run on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			student_number TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			homeroom_class TEXT NOT NULL DEFAULT '',
			attendance_no INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS teachers (
			teacher_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS classes (
			class_id SERIAL PRIMARY KEY,
			class_name TEXT UNIQUE NOT NULL,
			teacher_id INTEGER REFERENCES teachers(teacher_id) ON DELETE SET NULL
		)`,
		// No uniqueness on (class_id, date, period): generating a new code for
		// the same slot intentionally creates a second session.
		`CREATE TABLE IF NOT EXISTS class_sessions (
			session_id SERIAL PRIMARY KEY,
			class_id INTEGER REFERENCES classes(class_id) ON DELETE SET NULL,
			date DATE NOT NULL,
			period INTEGER NOT NULL DEFAULT 1,
			sound_token TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attendance_results (
			result_id SERIAL PRIMARY KEY,
			session_id INTEGER NOT NULL REFERENCES class_sessions(session_id) ON DELETE CASCADE,
			student_number TEXT NOT NULL REFERENCES students(student_number) ON DELETE CASCADE,
			status TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			UNIQUE (session_id, student_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_students_homeroom ON students (homeroom_class, attendance_no)`,
		`CREATE INDEX IF NOT EXISTS idx_class_sessions_date ON class_sessions (date, period)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_results_student ON attendance_results (student_number)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
