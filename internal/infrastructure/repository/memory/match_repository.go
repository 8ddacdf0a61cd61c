package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/match"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/id"
)

type matchKey struct {
	name string
	date int64
}

type MatchRepository struct {
	mu    sync.Mutex
	ids   *id.Sequence
	items map[matchKey]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		ids:   id.NewSequence("match"),
		items: make(map[matchKey]match.Match),
	}
}

func (r *MatchRepository) Upsert(_ context.Context, name string, date time.Time) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := matchKey{name: name, date: date.Unix()}
	if existing, ok := r.items[key]; ok {
		return existing, false, nil
	}

	matchID, err := r.ids.NewID()
	if err != nil {
		return match.Match{}, false, err
	}
	item := match.Match{ID: matchID, Name: name, Date: date}
	r.items[key] = item
	return item, true, nil
}

// List returns every stored match. Order is unspecified.
func (r *MatchRepository) List() []match.Match {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]match.Match, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out
}
