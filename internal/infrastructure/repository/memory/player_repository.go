package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := append([]player.Player(nil), players...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return &PlayerRepository{players: items}
}

func (r *PlayerRepository) FindByExactName(_ context.Context, name string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) FindByNameSubstring(_ context.Context, fragment string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fragment = strings.ToLower(fragment)
	for _, p := range r.players {
		if strings.Contains(strings.ToLower(p.Name), fragment) {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)
	return out, nil
}
