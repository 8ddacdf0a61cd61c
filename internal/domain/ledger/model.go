package ledger

import "time"

// Entry marks a feed day label as fully ingested.
type Entry struct {
	CalendarLabel string
	IngestedAt    time.Time
}

// Set is a lookup over already ingested labels.
type Set map[string]struct{}

func NewSet(labels []string) Set {
	out := make(Set, len(labels))
	for _, label := range labels {
		out[label] = struct{}{}
	}
	return out
}

func (s Set) Contains(label string) bool {
	_, ok := s[label]
	return ok
}
