package flashscore

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/feed"
)

type daySnapshot struct {
	fixtures []feed.Fixture
}

func (s daySnapshot) Fixtures() []feed.Fixture {
	return s.fixtures
}

type fixtureRow struct {
	homeScore     string
	awayScore     string
	status        string
	homeName      string
	awayName      string
	tournament    string
	hasTournament bool
}

func (f fixtureRow) HomeScore() string { return f.homeScore }
func (f fixtureRow) AwayScore() string { return f.awayScore }
func (f fixtureRow) Status() string    { return f.status }
func (f fixtureRow) HomeName() string  { return f.homeName }
func (f fixtureRow) AwayName() string  { return f.awayName }

func (f fixtureRow) Tournament() (string, bool) {
	return f.tournament, f.hasTournament
}

// ParseDaySnapshot reads every fixture row of a rendered results page.
func ParseDaySnapshot(r io.Reader) (feed.DaySnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, crerr.Wrap(err, "parse results page")
	}

	rows := doc.Find(selMatch)
	fixtures := make([]feed.Fixture, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		tournament, ok := leagueHeaderTitle(row)
		fixtures = append(fixtures, fixtureRow{
			homeScore:     textOf(row, selHomeScore),
			awayScore:     textOf(row, selAwayScore),
			status:        textOf(row, selStage),
			homeName:      textOf(row, selHomeName),
			awayName:      textOf(row, selAwayName),
			tournament:    tournament,
			hasTournament: ok,
		})
	})
	return daySnapshot{fixtures: fixtures}, nil
}

// leagueHeaderTitle walks preceding siblings up to the nearest league header.
func leagueHeaderTitle(row *goquery.Selection) (string, bool) {
	for prev := row.Prev(); prev.Length() > 0; prev = prev.Prev() {
		if prev.HasClass(classLeagueHeader) {
			return strings.TrimSpace(prev.Find(selLeagueTitle).First().Text()), true
		}
	}
	return "", false
}

func textOf(row *goquery.Selection, selector string) string {
	return strings.TrimSpace(row.Find(selector).First().Text())
}
