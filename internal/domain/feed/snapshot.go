package feed

// Fixture exposes the text of one rendered fixture row.
type Fixture interface {
	HomeScore() string
	AwayScore() string
	Status() string
	HomeName() string
	AwayName() string
	// Tournament walks back through preceding siblings to the nearest section header.
	// ok is false when no header precedes the fixture.
	Tournament() (name string, ok bool)
}

// DaySnapshot is the rendered state of the feed for the current day.
type DaySnapshot interface {
	Fixtures() []Fixture
}
