package models

import "testing"

func TestStatusDisplayMapping(t *testing.T) {
	cases := []struct {
		status AttendanceStatus
		class  string
		label  string
	}{
		{StatusPresent, "attend", "出席"},
		{StatusAbsent, "absent", "欠席"},
		{StatusLate, "late", "遅刻"},
		{StatusLeftEarly, "early", "早退"},
		{StatusExcused, "public-abs", "公欠"},
		{StatusSpecialExcused, "special-abs", "特欠"},
		{StatusNoData, "no-data", "データなし"},
	}
	for _, c := range cases {
		d := c.status.Display()
		if d.Class != c.class || d.Label != c.label {
			t.Errorf("Display(%q) = {%q, %q}, want {%q, %q}", c.status, d.Class, d.Label, c.class, c.label)
		}
	}
}

func TestStatusDisplayUnknownFallsBack(t *testing.T) {
	d := AttendanceStatus("???").Display()
	if d.Class != "no-data" || d.Label != "データなし" {
		t.Errorf("unknown status displayed as {%q, %q}, want no-data fallback", d.Class, d.Label)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range StorableStatuses() {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if StatusNoData.Valid() {
		t.Error("データなし must not be storable")
	}
	if AttendanceStatus("present").Valid() {
		t.Error("untranslated value must not be storable")
	}
}
