package postgres

import (
	"strings"
	"testing"
	"time"

	qb "github.com/riskibarqy/fantasy-badminton/internal/platform/querybuilder"
)

func TestBuildFindPlayerQuery(t *testing.T) {
	query, args, err := buildFindPlayerQuery(qb.EqFold("name", "Viktor Axelsen"))
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.Contains(query, "WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL ORDER BY id LIMIT 1") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "Viktor Axelsen" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestBuildMatchUpsertQuery(t *testing.T) {
	day := time.Date(2026, 1, 13, 0, 0, 0, 0, time.FixedZone("WIB", 7*60*60))
	query, args, err := buildMatchUpsertQuery("m-1", "World Tour Finals", day)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.HasPrefix(query, "INSERT INTO matches (public_id, name, date) VALUES ($1, $2, $3) ON CONFLICT (name, date)") {
		t.Fatalf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "(xmax = 0) AS inserted") {
		t.Fatalf("expected insert marker in RETURNING: %s", query)
	}
	if len(args) != 3 || args[2] != "2026-01-13" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestBuildPlayerScoreIncrementQuery(t *testing.T) {
	query, args, err := buildPlayerScoreIncrementQuery("m-1", "ms-01", 100)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.Contains(query, "points = player_scores.points + EXCLUDED.points") {
		t.Fatalf("expected increment on conflict: %s", query)
	}
	if len(args) != 3 || args[0] != "m-1" || args[1] != "ms-01" || args[2] != 100 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestBuildRecordScrapedDatesQuery(t *testing.T) {
	at := time.Date(2026, 1, 13, 8, 0, 0, 0, time.UTC)
	query, args, err := buildRecordScrapedDatesQuery(dedupeStrings([]string{"12. Jan", "11. Jan", "12. Jan"}), at)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "INSERT INTO scraped_dates (date, scraped_at) VALUES ($1, $2), ($3, $4) ON CONFLICT (date) DO UPDATE SET scraped_at = EXCLUDED.scraped_at"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[0] != "12. Jan" || args[2] != "11. Jan" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
