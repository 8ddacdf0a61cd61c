package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/ledger"
)

type LedgerRepository struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries map[string]ledger.Entry
}

func NewLedgerRepository(labels ...string) *LedgerRepository {
	r := &LedgerRepository{
		now:     time.Now,
		entries: make(map[string]ledger.Entry, len(labels)),
	}
	ingestedAt := r.now()
	for _, label := range labels {
		r.entries[label] = ledger.Entry{CalendarLabel: label, IngestedAt: ingestedAt}
	}
	return r
}

func (r *LedgerRepository) ListIngestedDates(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]ledger.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IngestedAt.Equal(entries[j].IngestedAt) {
			return entries[i].CalendarLabel > entries[j].CalendarLabel
		}
		return entries[i].IngestedAt.After(entries[j].IngestedAt)
	})

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.CalendarLabel)
	}
	return out, nil
}

func (r *LedgerRepository) RecordIngestedDates(_ context.Context, labels []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ingestedAt := r.now()
	for _, label := range labels {
		r.entries[label] = ledger.Entry{CalendarLabel: label, IngestedAt: ingestedAt}
	}
	return nil
}
