package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-badminton/internal/platform/cache"
)

const playerKeyPrefix = "player:"

// PlayerRepository memoizes registry lookups. Ingestion never writes players, so
// a run resolving the same name many times hits the store once.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

type cachedPlayerLookup struct {
	value  player.Player
	exists bool
}

func (r *PlayerRepository) FindByExactName(ctx context.Context, name string) (player.Player, bool, error) {
	return r.lookup(ctx, playerKeyPrefix+"exact:"+strings.ToLower(name), func(ctx context.Context) (player.Player, bool, error) {
		return r.next.FindByExactName(ctx, name)
	})
}

func (r *PlayerRepository) FindByNameSubstring(ctx context.Context, fragment string) (player.Player, bool, error) {
	return r.lookup(ctx, playerKeyPrefix+"contains:"+strings.ToLower(fragment), func(ctx context.Context) (player.Player, bool, error) {
		return r.next.FindByNameSubstring(ctx, fragment)
	})
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, playerKeyPrefix+"all", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

// Invalidate drops every cached lookup, used after the registry is reseeded.
func (r *PlayerRepository) Invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, playerKeyPrefix)
}

func (r *PlayerRepository) lookup(
	ctx context.Context,
	key string,
	load func(context.Context) (player.Player, bool, error),
) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedPlayerLookup{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerLookup)
	return cached.value, cached.exists, nil
}
