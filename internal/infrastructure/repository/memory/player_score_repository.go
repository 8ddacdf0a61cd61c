package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/playerscore"
)

type scoreKey struct {
	matchID  string
	playerID string
}

type PlayerScoreRepository struct {
	mu    sync.Mutex
	items map[scoreKey]playerscore.PlayerScore
}

func NewPlayerScoreRepository() *PlayerScoreRepository {
	return &PlayerScoreRepository{items: make(map[scoreKey]playerscore.PlayerScore)}
}

func (r *PlayerScoreRepository) Increment(_ context.Context, matchID, playerID string, points int) (playerscore.PlayerScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scoreKey{matchID: matchID, playerID: playerID}
	item, ok := r.items[key]
	if !ok {
		item = playerscore.PlayerScore{MatchID: matchID, PlayerID: playerID}
	}
	item.Points += points
	r.items[key] = item
	return item, nil
}

func (r *PlayerScoreRepository) Get(matchID, playerID string) (playerscore.PlayerScore, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[scoreKey{matchID: matchID, playerID: playerID}]
	return item, ok
}

func (r *PlayerScoreRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.items)
}
