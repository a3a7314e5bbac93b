// Package calendar builds the month view of the appointment calendar:
// the padded week grid, per-day appointment lookups, suggested-availability
// markers and the per-user selection/navigation state.
package calendar

import "time"

const DaysPerWeek = 7

const dayKeyLayout = "2006-01-02"

// DayKey is the ISO date of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// SameDay compares calendar dates, not instants.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameMonth compares year and month only.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Monday-based offset: Monday 0 ... Sunday 6.
func weekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % DaysPerWeek
}

// MonthGrid returns every day from the Monday on or before the first of
// ref's month to the Sunday on or after its last day, at midnight in ref's
// location. Steps use AddDate so DST changes never skip or repeat a day.
func MonthGrid(ref time.Time) []time.Time {
	first := StartOfMonth(ref)
	last := first.AddDate(0, 1, -1)

	gridStart := first.AddDate(0, 0, -weekdayOffset(first))
	gridEnd := last.AddDate(0, 0, DaysPerWeek-1-weekdayOffset(last))

	days := make([]time.Time, 0, 6*DaysPerWeek)
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
