package feed

import "testing"

type stubFixture struct {
	homeScore, awayScore string
	status               string
	homeName, awayName   string
	tournament           string
	hasHeader            bool
}

func (f stubFixture) HomeScore() string { return f.homeScore }
func (f stubFixture) AwayScore() string { return f.awayScore }
func (f stubFixture) Status() string    { return f.status }
func (f stubFixture) HomeName() string  { return f.homeName }
func (f stubFixture) AwayName() string  { return f.awayName }
func (f stubFixture) Tournament() (string, bool) {
	return f.tournament, f.hasHeader
}

type stubSnapshot []Fixture

func (s stubSnapshot) Fixtures() []Fixture { return s }

func completed(home, away, homeScore, awayScore string) stubFixture {
	return stubFixture{
		homeScore:  homeScore,
		awayScore:  awayScore,
		status:     "Finished",
		homeName:   home,
		awayName:   away,
		tournament: "World Tour Finals",
		hasHeader:  true,
	}
}

func TestDeriveWinner_TieGoesToHome(t *testing.T) {
	homeGames, awayGames := CountGames("21 18", "15 21 19")
	if homeGames != 1 || awayGames != 1 {
		t.Fatalf("unexpected games: home=%d away=%d want 1-1", homeGames, awayGames)
	}

	got := DeriveWinner("Viktor Axelsen", "Lee Zii Jia", "21 18", "15 21 19")
	if got != "Viktor Axelsen" {
		t.Fatalf("expected home side on tie, got %q", got)
	}
}

func TestDeriveWinner(t *testing.T) {
	tests := []struct {
		name      string
		homeScore string
		awayScore string
		want      string
	}{
		{name: "home straight games", homeScore: "21 21", awayScore: "15 17", want: "home"},
		{name: "away in three", homeScore: "21 18 19", awayScore: "15 21 21", want: "away"},
		{name: "placeholders ignored", homeScore: "21 - 21", awayScore: "10 - 12", want: "home"},
		{name: "tied game awards nobody", homeScore: "21 20", awayScore: "21 22", want: "away"},
		{name: "nothing parsable defaults home", homeScore: "w/o", awayScore: "ret", want: "home"},
		{name: "tie-break suffix parsed", homeScore: "22(9) 15", awayScore: "20 21", want: "home"},
		{name: "newlines split", homeScore: "11\n11\n11", awayScore: "5\n13\n13", want: "away"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveWinner("home", "away", tt.homeScore, tt.awayScore)
			if got != tt.want {
				t.Fatalf("DeriveWinner(%q, %q) = %q, want %q", tt.homeScore, tt.awayScore, got, tt.want)
			}
		})
	}
}

func TestExtractCompletedMatches_ExcludesPlaceholderScores(t *testing.T) {
	scores := [][2]string{
		{"", "21 21"},
		{"21 21", ""},
		{"-", "21 21"},
		{"21 21", "-"},
		{"  ", "21"},
	}

	for _, pair := range scores {
		snapshot := stubSnapshot{completed("A", "B", pair[0], pair[1])}
		got := ExtractCompletedMatches(snapshot, "12. Jan")
		if len(got) != 0 {
			t.Fatalf("expected fixture with scores %q vs %q excluded, got %+v", pair[0], pair[1], got)
		}
	}
}

func TestExtractCompletedMatches_ExcludesUnfinishedStatuses(t *testing.T) {
	for _, status := range []string{"LIVE", "Set 2 - live", "Interrupted", "postponed", "SUSPENDED"} {
		item := completed("A", "B", "21 21", "10 10")
		item.status = status
		got := ExtractCompletedMatches(stubSnapshot{item}, "12. Jan")
		if len(got) != 0 {
			t.Fatalf("expected status %q excluded", status)
		}
	}
}

func TestExtractCompletedMatches_RequiresTournamentAndNames(t *testing.T) {
	noHeader := completed("A", "B", "21 21", "10 10")
	noHeader.hasHeader = false
	noHeader.tournament = ""

	emptyHeader := completed("A", "B", "21 21", "10 10")
	emptyHeader.tournament = "  "

	noHome := completed("", "B", "21 21", "10 10")
	noAway := completed("A", "", "21 21", "10 10")

	got := ExtractCompletedMatches(stubSnapshot{noHeader, emptyHeader, noHome, noAway}, "12. Jan")
	if len(got) != 0 {
		t.Fatalf("expected all fixtures excluded, got %+v", got)
	}
}

func TestExtractCompletedMatches_KeepsFeedOrderAndFields(t *testing.T) {
	first := completed(" Viktor Axelsen ", "Lee Zii Jia", "21 21", "15 17")
	second := completed("An Se-young", "Chen Yufei", "18 21 12", "21 15 21")
	second.tournament = "India Open"
	live := completed("X", "Y", "5", "3")
	live.status = "Live"

	got := ExtractCompletedMatches(stubSnapshot{first, live, second}, "12. Jan")
	if len(got) != 2 {
		t.Fatalf("unexpected match count: got=%d want=2", len(got))
	}

	if got[0].HomeName != "Viktor Axelsen" || got[0].WinnerName != "Viktor Axelsen" {
		t.Fatalf("unexpected first match: %+v", got[0])
	}
	if got[0].Date != "12. Jan" || got[0].Tournament != "World Tour Finals" {
		t.Fatalf("unexpected first match metadata: %+v", got[0])
	}
	if got[1].WinnerName != "Chen Yufei" || got[1].Tournament != "India Open" {
		t.Fatalf("unexpected second match: %+v", got[1])
	}
	if got[1].LoserName() != "An Se-young" {
		t.Fatalf("unexpected loser: %s", got[1].LoserName())
	}
}

func TestExtractCompletedMatches_NilSnapshot(t *testing.T) {
	got := ExtractCompletedMatches(nil, "12. Jan")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{raw: "21", want: 21, wantOK: true},
		{raw: "22(9)", want: 22, wantOK: true},
		{raw: "-3", want: -3, wantOK: true},
		{raw: "+7x", want: 7, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "-", wantOK: false},
		{raw: "w/o", wantOK: false},
		{raw: "99999999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := leadingInt(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("leadingInt(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDeriveWinner_OverflowingGameIsIgnored(t *testing.T) {
	got := DeriveWinner("home", "away", "99999999999999999999999 15", "1 21")
	if got != "away" {
		t.Fatalf("overflowing game must not count, got %q", got)
	}
}

func TestCompletedMatch_LoserName(t *testing.T) {
	m := CompletedMatch{HomeName: "Viktor Axelsen", AwayName: "Lee Zii Jia", WinnerName: "Lee Zii Jia"}
	if got := m.LoserName(); got != "Viktor Axelsen" {
		t.Fatalf("unexpected loser: %q", got)
	}
	same := CompletedMatch{HomeName: "Lee Zii Jia", AwayName: "Lee Zii Jia", WinnerName: "Lee Zii Jia"}
	if got := same.LoserName(); got != "" {
		t.Fatalf("same-name sides have no distinct loser, got %q", got)
	}
}
