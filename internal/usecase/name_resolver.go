package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/player"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
)

// MatchTier tells which lookup strategy resolved a scraped name.
type MatchTier int

const (
	MatchTierNone MatchTier = iota
	MatchTierExact
	MatchTierContains
	MatchTierReverse
)

func (t MatchTier) String() string {
	switch t {
	case MatchTierExact:
		return "exact"
	case MatchTierContains:
		return "contains"
	case MatchTierReverse:
		return "reverse"
	default:
		return "none"
	}
}

// Resolution is the registry entry a scraped name resolved to.
type Resolution struct {
	Player player.Player
	Tier   MatchTier
}

func (r Resolution) Found() bool {
	return r.Tier != MatchTierNone
}

// NameResolver maps scraped participant names onto registry players.
// It never writes to the registry.
type NameResolver struct {
	players player.Repository
	logger  *logging.Logger
}

func NewNameResolver(players player.Repository, logger *logging.Logger) *NameResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &NameResolver{
		players: players,
		logger:  logger,
	}
}

// Resolve tries an exact case-insensitive match, then a registry name containing the
// scraped name, then a registry name contained in the scraped name. The first hit wins.
func (r *NameResolver) Resolve(ctx context.Context, name string) (Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NameResolver.Resolve")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return Resolution{}, nil
	}

	item, ok, err := r.players.FindByExactName(ctx, name)
	if err != nil {
		markSpanError(span, err)
		return Resolution{}, fmt.Errorf("find player by exact name %q: %w", name, err)
	}
	if ok {
		return Resolution{Player: item, Tier: MatchTierExact}, nil
	}

	item, ok, err = r.players.FindByNameSubstring(ctx, name)
	if err != nil {
		markSpanError(span, err)
		return Resolution{}, fmt.Errorf("find player by name substring %q: %w", name, err)
	}
	if ok {
		r.logger.DebugContext(ctx, "fuzzy player match", "scraped", name, "registry", item.Name)
		return Resolution{Player: item, Tier: MatchTierContains}, nil
	}

	items, err := r.players.ListAll(ctx)
	if err != nil {
		markSpanError(span, err)
		return Resolution{}, fmt.Errorf("list players: %w", err)
	}
	lowered := strings.ToLower(name)
	for _, candidate := range items {
		registryName := strings.ToLower(strings.TrimSpace(candidate.Name))
		if registryName == "" {
			continue
		}
		if strings.Contains(lowered, registryName) {
			r.logger.DebugContext(ctx, "reverse player match", "scraped", name, "registry", candidate.Name)
			return Resolution{Player: candidate, Tier: MatchTierReverse}, nil
		}
	}

	return Resolution{}, nil
}
