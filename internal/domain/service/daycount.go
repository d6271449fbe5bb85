package service

import "time"

// ---------------------------------------------------------------------------
// Day-count arithmetic
// ---------------------------------------------------------------------------

// civil strips a timestamp to its calendar date at UTC midnight. Dates are
// treated as naive YYYY-MM-DD values; wall-clock time and zone offsets never
// influence day counts.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysDifference returns the signed number of calendar days from d1 to d2.
func DaysDifference(d1, d2 time.Time) int {
	return int(civil(d2).Sub(civil(d1)).Hours() / 24)
}

// InclusiveDays counts accrual days between start and end where both
// endpoints count: InclusiveDays(d, d) == 1. Every downstream interest and
// penalty formula depends on this convention.
func InclusiveDays(start, end time.Time) int {
	days := DaysDifference(start, end) + 1
	if days < 1 {
		return 1
	}
	return days
}

// DaysPastDue returns the whole days elapsed since dueDate as of asOf,
// floored at zero. The due date itself is not a past-due day.
func DaysPastDue(dueDate, asOf time.Time) int {
	dpd := DaysDifference(dueDate, asOf)
	if dpd < 0 {
		return 0
	}
	return dpd
}
