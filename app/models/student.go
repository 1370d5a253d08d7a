package models

import "time"

// Student is one roster entry. The student number is the primary identity and
// the value students log in with; attendance_no is the per-class roll number
// used to order the grid, not a unique key.
type Student struct {
	StudentNumber string    `json:"student_number" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Email         string    `json:"email" validate:"required,email"`
	Password      string    `json:"-"`
	HomeroomClass string    `json:"homeroom_class"`
	AttendanceNo  int       `json:"attendance_no"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
