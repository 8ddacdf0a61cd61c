package memory

import (
	"context"
	"testing"
	"time"
)

func TestSeedPlayersAreValid(t *testing.T) {
	seen := make(map[string]struct{})
	for _, p := range SeedPlayers() {
		if err := p.Validate(); err != nil {
			t.Fatalf("invalid seed player %q: %v", p.Name, err)
		}
		if _, ok := seen[p.ID]; ok {
			t.Fatalf("duplicate seed id %s", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
}

func TestPlayerRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(SeedPlayers())

	got, ok, err := repo.FindByExactName(ctx, "viktor axelsen")
	if err != nil || !ok {
		t.Fatalf("expected exact match, ok=%v err=%v", ok, err)
	}
	if got.ID != "ms-01" {
		t.Fatalf("unexpected player id: %s", got.ID)
	}

	got, ok, err = repo.FindByNameSubstring(ctx, "AXEL")
	if err != nil || !ok || got.ID != "ms-01" {
		t.Fatalf("expected substring match on ms-01, got=%+v ok=%v err=%v", got, ok, err)
	}

	if _, ok, _ := repo.FindByNameSubstring(ctx, "V. Axelsen"); ok {
		t.Fatalf("abbreviated name must not match by substring")
	}
}

func TestMatchRepository_UpsertIsKeyedByNameAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository()
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	first, created, err := repo.Upsert(ctx, "World Tour Finals", day)
	if err != nil || !created {
		t.Fatalf("expected first upsert to create, created=%v err=%v", created, err)
	}
	second, created, err := repo.Upsert(ctx, "World Tour Finals", day)
	if err != nil || created {
		t.Fatalf("expected second upsert to reuse row, created=%v err=%v", created, err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same match id, got %s and %s", first.ID, second.ID)
	}

	other, created, _ := repo.Upsert(ctx, "World Tour Finals", day.AddDate(0, 0, 1))
	if !created || other.ID == first.ID {
		t.Fatalf("expected a new match for the next day")
	}
	if len(repo.List()) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(repo.List()))
	}
}

func TestPlayerScoreRepository_IncrementAccumulates(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerScoreRepository()

	if _, err := repo.Increment(ctx, "match-1", "ms-01", 100); err != nil {
		t.Fatalf("increment: %v", err)
	}
	got, err := repo.Increment(ctx, "match-1", "ms-01", 100)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if got.Points != 200 {
		t.Fatalf("expected 200 points, got %d", got.Points)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected a single score row, got %d", repo.Len())
	}
}

func TestLedgerRepository_ListsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()

	base := time.Date(2026, 1, 13, 8, 0, 0, 0, time.UTC)
	calls := 0
	repo.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}

	if err := repo.RecordIngestedDates(ctx, []string{"11. Jan"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.RecordIngestedDates(ctx, []string{"12. Jan"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.RecordIngestedDates(ctx, []string{"11. Jan"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := repo.ListIngestedDates(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0] != "11. Jan" || got[1] != "12. Jan" {
		t.Fatalf("unexpected ledger order: %v", got)
	}
}
