package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/feed"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/player"
)

const (
	maxNameSuggestions   = 3
	suggestionDistRatio  = 0.4
	defaultReportWorkers = 4
)

// PlayerMatchReport compares participant names seen in a run against the registry.
type PlayerMatchReport struct {
	TotalUnique   int                 `json:"total_unique"`
	InRegistry    []string            `json:"in_registry"`
	NotInRegistry []string            `json:"not_in_registry"`
	Suggestions   map[string][]string `json:"suggestions,omitempty"`
}

// PlayerReportService builds curation hints so missing players can be added before the next run.
type PlayerReportService struct {
	players player.Repository
	workers int
}

func NewPlayerReportService(players player.Repository, workers int) *PlayerReportService {
	if workers <= 0 {
		workers = defaultReportWorkers
	}
	return &PlayerReportService{players: players, workers: workers}
}

func (s *PlayerReportService) Build(ctx context.Context, batches []feed.DayBatch) (PlayerMatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerReportService.Build")
	defer span.End()

	scraped := UniqueParticipantNames(batches)
	registry, err := s.players.ListAll(ctx)
	if err != nil {
		markSpanError(span, err)
		return PlayerMatchReport{}, fmt.Errorf("list players: %w", err)
	}

	known := make(map[string]struct{}, len(registry))
	for _, item := range registry {
		known[strings.ToLower(item.Name)] = struct{}{}
	}

	report := PlayerMatchReport{
		TotalUnique:   len(scraped),
		InRegistry:    []string{},
		NotInRegistry: []string{},
	}
	for _, name := range scraped {
		if _, ok := known[strings.ToLower(name)]; ok {
			report.InRegistry = append(report.InRegistry, name)
			continue
		}
		report.NotInRegistry = append(report.NotInRegistry, name)
	}
	if len(report.NotInRegistry) == 0 || len(registry) == 0 {
		return report, nil
	}

	suggestions, err := s.suggest(report.NotInRegistry, registry)
	if err != nil {
		markSpanError(span, err)
		return report, err
	}
	report.Suggestions = suggestions
	return report, nil
}

func (s *PlayerReportService) suggest(missing []string, registry []player.Player) (map[string][]string, error) {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
		out     = make(map[string][]string, len(missing))
	)
	for _, name := range missing {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			closest := closestRegistryNames(name, registry)
			if len(closest) == 0 {
				return
			}
			mu.Lock()
			out[name] = closest
			mu.Unlock()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit suggestion task: %w", err)
		}
	}
	workers.Wait()
	return out, nil
}

type nameCandidate struct {
	name  string
	ratio float64
}

func closestRegistryNames(name string, registry []player.Player) []string {
	lowered := strings.ToLower(name)
	candidates := make([]nameCandidate, 0, maxNameSuggestions)
	for _, item := range registry {
		other := strings.ToLower(item.Name)
		longest := max(utf8.RuneCountInString(lowered), utf8.RuneCountInString(other))
		if longest == 0 {
			continue
		}
		ratio := float64(levenshtein.ComputeDistance(lowered, other)) / float64(longest)
		if ratio >= suggestionDistRatio {
			continue
		}
		candidates = append(candidates, nameCandidate{name: item.Name, ratio: ratio})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ratio < candidates[j].ratio
	})
	if len(candidates) > maxNameSuggestions {
		candidates = candidates[:maxNameSuggestions]
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.name)
	}
	return out
}

// UniqueParticipantNames returns every home and away name in the batches, sorted.
func UniqueParticipantNames(batches []feed.DayBatch) []string {
	seen := make(map[string]struct{})
	for _, batch := range batches {
		for _, item := range batch.Matches {
			seen[item.HomeName] = struct{}{}
			seen[item.AwayName] = struct{}{}
		}
	}
	delete(seen, "")
	return sortedNames(seen)
}
