package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/player"
	"github.com/riskibarqy/fantasy-badminton/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/fantasy-badminton/internal/mocks/domain/player"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestNameResolver_ExactMatchStopsLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := playermock.NewRepository(t)
	axelsen := player.Player{ID: "ms-01", Name: "Viktor Axelsen", Price: 12, Category: player.CategoryMensSingles}

	players.
		On("FindByExactName", mock.Anything, "viktor axelsen").
		Return(axelsen, true, nil).
		Once()

	got, err := NewNameResolver(players, logging.NewNop()).Resolve(ctx, "  viktor axelsen ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Tier != MatchTierExact || got.Player.ID != "ms-01" {
		t.Fatalf("unexpected resolution: %+v", got)
	}
	players.AssertNotCalled(t, "FindByNameSubstring", mock.Anything, mock.Anything)
	players.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestNameResolver_EmptyNameIsUnresolved(t *testing.T) {
	t.Parallel()

	players := playermock.NewRepository(t)
	got, err := NewNameResolver(players, logging.NewNop()).Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Found() {
		t.Fatalf("expected unresolved, got %+v", got)
	}
}

func TestNameResolver_RepositoryErrorIsWrapped(t *testing.T) {
	t.Parallel()

	players := playermock.NewRepository(t)
	boom := errors.New("connection reset")
	players.
		On("FindByExactName", mock.Anything, "Lee Zii Jia").
		Return(player.Player{}, false, nil).
		Once()
	players.
		On("FindByNameSubstring", mock.Anything, "Lee Zii Jia").
		Return(player.Player{}, false, boom).
		Once()

	_, err := NewNameResolver(players, logging.NewNop()).Resolve(context.Background(), "Lee Zii Jia")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestNameResolver_Tiers(t *testing.T) {
	t.Parallel()

	resolver := NewNameResolver(memory.NewPlayerRepository(memory.SeedPlayers()), logging.NewNop())

	cases := []struct {
		name     string
		scraped  string
		wantTier MatchTier
		wantID   string
	}{
		{name: "exact ignores case", scraped: "VIKTOR AXELSEN", wantTier: MatchTierExact, wantID: "ms-01"},
		{name: "registry contains scraped", scraped: "Axelsen", wantTier: MatchTierContains, wantID: "ms-01"},
		{name: "scraped contains registry", scraped: "Lee Zii Jia (MAS)", wantTier: MatchTierReverse, wantID: "ms-03"},
		{name: "abbreviated first name is not matched", scraped: "V. Axelsen", wantTier: MatchTierNone},
		{name: "unknown player", scraped: "Player Nobody", wantTier: MatchTierNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolver.Resolve(context.Background(), tc.scraped)
			if err != nil {
				t.Fatalf("resolve %q: %v", tc.scraped, err)
			}
			if got.Tier != tc.wantTier {
				t.Fatalf("unexpected tier for %q: got=%s want=%s", tc.scraped, got.Tier, tc.wantTier)
			}
			if got.Player.ID != tc.wantID {
				t.Fatalf("unexpected player for %q: got=%s want=%s", tc.scraped, got.Player.ID, tc.wantID)
			}
		})
	}
}
