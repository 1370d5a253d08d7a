package database

import (
	"database/sql"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
)

func GetStudentByNumber(db *sql.DB, studentNumber string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT student_number, name, email, password, homeroom_class, attendance_no, created_at, updated_at
			  FROM students WHERE student_number = $1`

	err := db.QueryRow(query, studentNumber).Scan(
		&student.StudentNumber, &student.Name, &student.Email, &student.Password,
		&student.HomeroomClass, &student.AttendanceNo, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func GetStudentByEmail(db *sql.DB, email string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT student_number, name, email, password, homeroom_class, attendance_no, created_at, updated_at
			  FROM students WHERE email = $1`

	err := db.QueryRow(query, email).Scan(
		&student.StudentNumber, &student.Name, &student.Email, &student.Password,
		&student.HomeroomClass, &student.AttendanceNo, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudentsByHomeroom returns the roster for a homeroom class, ordered by
// roll number. An unknown class name simply yields an empty roster.
func GetStudentsByHomeroom(db *sql.DB, className string) ([]*models.Student, error) {
	query := `SELECT student_number, name, email, homeroom_class, attendance_no, created_at, updated_at
			  FROM students WHERE homeroom_class = $1 ORDER BY attendance_no ASC`

	rows, err := db.Query(query, className)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.StudentNumber, &student.Name, &student.Email,
			&student.HomeroomClass, &student.AttendanceNo, &student.CreatedAt, &student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT student_number, name, email, homeroom_class, attendance_no, created_at, updated_at
			  FROM students ORDER BY homeroom_class ASC, attendance_no ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.StudentNumber, &student.Name, &student.Email,
			&student.HomeroomClass, &student.AttendanceNo, &student.CreatedAt, &student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// CreateStudent inserts a new roster entry. The password must already be
// hashed by the caller.
func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (student_number, name, email, password, homeroom_class, attendance_no, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			  RETURNING created_at, updated_at`

	return db.QueryRow(query,
		student.StudentNumber, student.Name, student.Email, student.Password,
		student.HomeroomClass, student.AttendanceNo,
	).Scan(&student.CreatedAt, &student.UpdatedAt)
}

func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `UPDATE students
			  SET name = $1, email = $2, homeroom_class = $3, attendance_no = $4, updated_at = NOW()
			  WHERE student_number = $5`

	result, err := db.Exec(query,
		student.Name, student.Email, student.HomeroomClass, student.AttendanceNo, student.StudentNumber)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func UpdateStudentPassword(db *sql.DB, studentNumber, hashedPassword string) error {
	query := `UPDATE students SET password = $1, updated_at = NOW() WHERE student_number = $2`
	_, err := db.Exec(query, hashedPassword, studentNumber)
	return err
}

// DeleteStudent removes a roster entry. Attendance results cascade in the
// schema.
func DeleteStudent(db *sql.DB, studentNumber string) error {
	result, err := db.Exec(`DELETE FROM students WHERE student_number = $1`, studentNumber)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
