package flashscore

import (
	"os"
	"strings"
	"testing"

	"github.com/chromedp/cdproto/cdp"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/feed"
)

func loadDaySnapshot(t *testing.T) feed.DaySnapshot {
	t.Helper()

	f, err := os.Open("testdata/day.html")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	snapshot, err := ParseDaySnapshot(f)
	if err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	return snapshot
}

func TestParseDaySnapshot_ReadsEveryRow(t *testing.T) {
	fixtures := loadDaySnapshot(t).Fixtures()
	if len(fixtures) != 8 {
		t.Fatalf("expected 8 fixture rows, got %d", len(fixtures))
	}

	if _, ok := fixtures[0].Tournament(); ok {
		t.Fatalf("row before any header must have no tournament")
	}

	name, ok := fixtures[1].Tournament()
	if !ok || name != "World Tour Finals" {
		t.Fatalf("unexpected tournament for row 1: %q ok=%v", name, ok)
	}
	if fixtures[1].HomeName() != "Viktor Axelsen" || fixtures[1].AwayScore() != "15 18" {
		t.Fatalf("unexpected row 1: home=%q away score=%q", fixtures[1].HomeName(), fixtures[1].AwayScore())
	}

	name, ok = fixtures[4].Tournament()
	if !ok || name != "India Open" {
		t.Fatalf("nearest header must win, got %q ok=%v", name, ok)
	}
	if fixtures[2].Status() != "Live" {
		t.Fatalf("unexpected status: %q", fixtures[2].Status())
	}
}

func TestParseDaySnapshot_ExtractsCompletedMatches(t *testing.T) {
	got := feed.ExtractCompletedMatches(loadDaySnapshot(t), "12/01 Mo")

	want := []feed.CompletedMatch{
		{
			Tournament: "World Tour Finals",
			HomeName:   "Viktor Axelsen",
			AwayName:   "Lee Zii Jia",
			HomeScore:  "21 21",
			AwayScore:  "15 18",
			Date:       "12/01 Mo",
			WinnerName: "Viktor Axelsen",
		},
		{
			Tournament: "India Open",
			HomeName:   "Kunlavut Vitidsarn",
			AwayName:   "V. Axelsen",
			HomeScore:  "21 18",
			AwayScore:  "15 21 19",
			Date:       "12/01 Mo",
			WinnerName: "Kunlavut Vitidsarn",
		},
		{
			Tournament: "India Open",
			HomeName:   "Lee Zii Jia",
			AwayName:   "Anders Antonsen",
			HomeScore:  "12",
			AwayScore:  "21 21",
			Date:       "12/01 Mo",
			WinnerName: "Anders Antonsen",
		},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("match %d mismatch:\nwant: %+v\ngot:  %+v", i, want[i], got[i])
		}
	}
}

func TestParseDaySnapshot_EmptyPage(t *testing.T) {
	snapshot, err := ParseDaySnapshot(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	if n := len(snapshot.Fixtures()); n != 0 {
		t.Fatalf("expected no fixtures, got %d", n)
	}
}

func TestIsDisabledControl(t *testing.T) {
	cases := []struct {
		name  string
		attrs []string
		want  bool
	}{
		{name: "enabled", attrs: []string{"class", "calendar__navigation"}, want: false},
		{name: "disabled attribute", attrs: []string{"disabled", ""}, want: true},
		{name: "disabled class", attrs: []string{"class", "calendar__navigation disabled"}, want: true},
		{name: "class containing disabled word", attrs: []string{"class", "not-disabled-yet"}, want: false},
		{name: "aria hidden", attrs: []string{"aria-hidden", "true"}, want: true},
		{name: "aria visible", attrs: []string{"aria-hidden", "false"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			node := &cdp.Node{Attributes: tc.attrs}
			if got := isDisabledControl(node); got != tc.want {
				t.Fatalf("isDisabledControl(%v) = %v, want %v", tc.attrs, got, tc.want)
			}
		})
	}
}
