package database

import (
	"database/sql"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
)

func GetTeacherByID(db *sql.DB, teacherID int) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	query := `SELECT teacher_id, name, email, password, created_at, updated_at
			  FROM teachers WHERE teacher_id = $1`

	err := db.QueryRow(query, teacherID).Scan(
		&teacher.TeacherID, &teacher.Name, &teacher.Email, &teacher.Password,
		&teacher.CreatedAt, &teacher.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

func GetTeacherByEmail(db *sql.DB, email string) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	query := `SELECT teacher_id, name, email, password, created_at, updated_at
			  FROM teachers WHERE email = $1`

	err := db.QueryRow(query, email).Scan(
		&teacher.TeacherID, &teacher.Name, &teacher.Email, &teacher.Password,
		&teacher.CreatedAt, &teacher.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

func GetAllTeachers(db *sql.DB) ([]*models.Teacher, error) {
	query := `SELECT teacher_id, name, email, created_at, updated_at
			  FROM teachers ORDER BY teacher_id ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher := &models.Teacher{}
		if err := rows.Scan(
			&teacher.TeacherID, &teacher.Name, &teacher.Email,
			&teacher.CreatedAt, &teacher.UpdatedAt,
		); err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}

// CreateTeacher inserts a teacher account. The password must already be
// hashed by the caller.
func CreateTeacher(db *sql.DB, teacher *models.Teacher) error {
	query := `INSERT INTO teachers (name, email, password, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())
			  RETURNING teacher_id, created_at, updated_at`

	return db.QueryRow(query, teacher.Name, teacher.Email, teacher.Password).Scan(
		&teacher.TeacherID, &teacher.CreatedAt, &teacher.UpdatedAt,
	)
}

func UpdateTeacher(db *sql.DB, teacher *models.Teacher) error {
	query := `UPDATE teachers SET name = $1, email = $2, updated_at = NOW() WHERE teacher_id = $3`

	result, err := db.Exec(query, teacher.Name, teacher.Email, teacher.TeacherID)
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

func UpdateTeacherPassword(db *sql.DB, teacherID int, hashedPassword string) error {
	query := `UPDATE teachers SET password = $1, updated_at = NOW() WHERE teacher_id = $2`
	_, err := db.Exec(query, hashedPassword, teacherID)
	return err
}

func DeleteTeacher(db *sql.DB, teacherID int) error {
	result, err := db.Exec(`DELETE FROM teachers WHERE teacher_id = $1`, teacherID)
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
