package models

// ClassSession is one class meeting for which an attendance code is valid.
// SessionID is a serial; the matcher treats the highest visible id as the
// active session. SoundToken stores the OTP as its decimal string form
// ("0000" marks sessions created only to anchor a manual edit).
type ClassSession struct {
	SessionID  int    `json:"session_id"`
	ClassID    *int   `json:"class_id,omitempty"`
	Date       string `json:"date"` // YYYY-MM-DD
	Period     int    `json:"period"`
	SoundToken string `json:"sound_token"`
}

// AttendanceResult is one recorded status for a (session, student) pair.
// The schema enforces at most one row per pair.
type AttendanceResult struct {
	ResultID      int              `json:"result_id"`
	SessionID     int              `json:"session_id"`
	StudentNumber string           `json:"student_number"`
	Status        AttendanceStatus `json:"status"`
	Note          string           `json:"note"`
}
