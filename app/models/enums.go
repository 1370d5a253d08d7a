package models

// AttendanceStatus is the closed set of stored status values. The Japanese
// labels are the canonical storage form; they are never translated on write.
type AttendanceStatus string

const (
	StatusPresent        AttendanceStatus = "出席"
	StatusAbsent         AttendanceStatus = "欠席"
	StatusLate           AttendanceStatus = "遅刻"
	StatusLeftEarly      AttendanceStatus = "早退"
	StatusExcused        AttendanceStatus = "公欠"
	StatusSpecialExcused AttendanceStatus = "特欠"

	// StatusNoData is the inferred state for a cell with no stored row. It is
	// never written to the database and is distinct from an explicit 欠席.
	StatusNoData AttendanceStatus = "データなし"
)

// StatusDisplay pairs the CSS class used by the result page with the label
// shown to users and written to the CSV export.
type StatusDisplay struct {
	Class string
	Label string
}

var statusDisplays = map[AttendanceStatus]StatusDisplay{
	StatusPresent:        {Class: "attend", Label: "出席"},
	StatusAbsent:         {Class: "absent", Label: "欠席"},
	StatusLate:           {Class: "late", Label: "遅刻"},
	StatusLeftEarly:      {Class: "early", Label: "早退"},
	StatusExcused:        {Class: "public-abs", Label: "公欠"},
	StatusSpecialExcused: {Class: "special-abs", Label: "特欠"},
	StatusNoData:         {Class: "no-data", Label: "データなし"},
}

// Display maps a status to its presentation form. Unknown values fall back to
// the no-data presentation rather than erroring, since old rows may predate
// the enumeration.
func (s AttendanceStatus) Display() StatusDisplay {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return statusDisplays[StatusNoData]
}

// Valid reports whether s is one of the storable status values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusLeftEarly, StatusExcused, StatusSpecialExcused:
		return true
	}
	return false
}

// StorableStatuses lists the values accepted by the manual-edit API, in the
// order they appear in the edit form.
func StorableStatuses() []AttendanceStatus {
	return []AttendanceStatus{
		StatusPresent, StatusAbsent, StatusLate, StatusLeftEarly, StatusExcused, StatusSpecialExcused,
	}
}
