package attendance

import (
	"time"

	"hrdash/internal/hrapi"
)

// SameDay reports whether two instants fall on the same calendar day in
// loc, ignoring time-of-day.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// RecordsOn filters an employee's attendance records to the given
// calendar day. Presence on that day is a non-empty result.
func RecordsOn(e hrapi.Employee, day time.Time, loc *time.Location) []hrapi.AttendanceRecord {
	matched := make([]hrapi.AttendanceRecord, 0, 1)
	for _, record := range e.AttendanceRecords {
		if record.Date.IsZero() {
			continue
		}
		if SameDay(record.Date.Time, day, loc) {
			matched = append(matched, record)
		}
	}
	return matched
}

func IsPresentOn(e hrapi.Employee, day time.Time, loc *time.Location) bool {
	return len(RecordsOn(e, day, loc)) > 0
}

// HasCheckedIn reports whether any record for the day holds a check-in
// timestamp. Once true for a date it stays true: later check-outs never
// clear a recorded check-in.
func HasCheckedIn(e hrapi.Employee, day time.Time, loc *time.Location) bool {
	for _, record := range RecordsOn(e, day, loc) {
		if record.CheckIn != nil && !record.CheckIn.IsZero() {
			return true
		}
	}
	return false
}

func HasCheckedOut(e hrapi.Employee, day time.Time, loc *time.Location) bool {
	for _, record := range RecordsOn(e, day, loc) {
		if record.CheckOut != nil && !record.CheckOut.IsZero() {
			return true
		}
	}
	return false
}
