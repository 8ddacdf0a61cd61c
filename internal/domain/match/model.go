package match

import "time"

// Match groups every scored result of one tournament on one calendar day.
// It is unique by (Name, Date).
type Match struct {
	ID   string
	Name string
	Date time.Time
}

// CalendarDay truncates t to midnight in loc. A nil loc means UTC.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
