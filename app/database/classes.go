package database

import (
	"database/sql"

	"github.com/esrgdtfdrrthnfytdr/cocone/app/models"
)

func GetAllClasses(db *sql.DB) ([]*models.Class, error) {
	query := `SELECT class_id, class_name, teacher_id FROM classes ORDER BY class_name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		if err := rows.Scan(&class.ClassID, &class.ClassName, &class.TeacherID); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// GetClassByName resolves a homeroom label to its classes row. Returns
// sql.ErrNoRows when no class carries that name.
func GetClassByName(q Queryer, className string) (*models.Class, error) {
	class := &models.Class{}
	query := `SELECT class_id, class_name, teacher_id FROM classes WHERE class_name = $1`

	err := q.QueryRow(query, className).Scan(&class.ClassID, &class.ClassName, &class.TeacherID)
	if err != nil {
		return nil, err
	}
	return class, nil
}

func CreateClass(db *sql.DB, class *models.Class) error {
	query := `INSERT INTO classes (class_name, teacher_id) VALUES ($1, $2) RETURNING class_id`
	return db.QueryRow(query, class.ClassName, class.TeacherID).Scan(&class.ClassID)
}
