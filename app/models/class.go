package models

// Class is static reference data. Students are grouped into a class by
// homeroom_class == class_name (string equality, no foreign key), so callers
// must tolerate homeroom labels that match no classes row.
type Class struct {
	ClassID   int    `json:"class_id"`
	ClassName string `json:"class_name" validate:"required"`
	TeacherID *int   `json:"teacher_id,omitempty"`
}
