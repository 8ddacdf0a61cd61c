package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/feed"
)

type fakeFixture struct {
	tournament string
	home       string
	away       string
	homeScore  string
	awayScore  string
	status     string
}

func (f fakeFixture) HomeScore() string { return f.homeScore }
func (f fakeFixture) AwayScore() string { return f.awayScore }
func (f fakeFixture) Status() string    { return f.status }
func (f fakeFixture) HomeName() string  { return f.home }
func (f fakeFixture) AwayName() string  { return f.away }
func (f fakeFixture) Tournament() (string, bool) {
	return f.tournament, f.tournament != ""
}

type fakeSnapshot struct {
	fixtures []feed.Fixture
	panicMsg string
}

func (s fakeSnapshot) Fixtures() []feed.Fixture {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.fixtures
}

type fakeDay struct {
	label    string
	snapshot fakeSnapshot
}

// fakeFeed serves days[0] as today; each StepBackward moves one index further.
type fakeFeed struct {
	mu        sync.Mutex
	days      []fakeDay
	pos       int
	openErr   error
	labelErr  error
	closed    int
	snapshots []string
}

func (f *fakeFeed) Open(context.Context) (FeedSession, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.mu.Lock()
	f.pos = 0
	f.mu.Unlock()
	return f, nil
}

func (f *fakeFeed) StepBackward(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pos+1 >= len(f.days) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeFeed) DayLabel(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.labelErr != nil {
		return "", f.labelErr
	}
	return f.days[f.pos].label, nil
}

func (f *fakeFeed) Snapshot(context.Context) (feed.DaySnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := f.days[f.pos]
	f.snapshots = append(f.snapshots, day.label)
	return day.snapshot, nil
}

func (f *fakeFeed) Close(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func completedFixture(tournament, home, away, homeScore, awayScore string) feed.Fixture {
	return fakeFixture{
		tournament: tournament,
		home:       home,
		away:       away,
		homeScore:  homeScore,
		awayScore:  awayScore,
		status:     "Finished",
	}
}

func newTestScrapeService(opener FeedOpener, lookback int) *ScrapeService {
	service := NewScrapeService(opener, ScrapeConfig{LookbackDays: lookback}, nil)
	service.now = func() time.Time { return time.Date(2026, 1, 13, 8, 0, 0, 0, time.UTC) }
	service.sleep = func(context.Context, time.Duration) {}
	return service
}

var errFakeRepository = errors.New("repository unavailable")
