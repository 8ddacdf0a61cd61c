package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/feed"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/match"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/playerscore"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/resilience"
)

// LedgerCommitMode controls when reconciled day labels are written to the ledger.
type LedgerCommitMode string

const (
	// LedgerCommitRun records every label once, after all batches are reconciled.
	LedgerCommitRun LedgerCommitMode = "run"
	// LedgerCommitDay records each label right after its batch is reconciled.
	LedgerCommitDay LedgerCommitMode = "day"
)

func ParseLedgerCommitMode(v string) (LedgerCommitMode, error) {
	switch LedgerCommitMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", LedgerCommitRun:
		return LedgerCommitRun, nil
	case LedgerCommitDay:
		return LedgerCommitDay, nil
	default:
		return "", fmt.Errorf("%w: unknown ledger commit mode %q", ErrInvalidInput, v)
	}
}

type ReconcileConfig struct {
	WinPoints  int
	Location   *time.Location
	CommitMode LedgerCommitMode
	// RegistryBreaker fails the remaining matches fast once registry writes keep failing.
	RegistryBreaker resilience.CircuitBreakerConfig
}

// IngestionResult aggregates one reconciliation pass. It is reported, never stored.
type IngestionResult struct {
	MatchesProcessed  int      `json:"matches_processed"`
	PointsAwarded     int      `json:"points_awarded"`
	NewMatchesCreated int      `json:"new_matches_created"`
	SkippedUnresolved int      `json:"skipped_unresolved"`
	UnresolvedNames   []string `json:"unresolved_names"`
	Errors            []string `json:"errors"`
	DatesIngested     []string `json:"dates_ingested"`
	// DatesDeferred were reconciled while registry writes were rejected and stay out of the ledger.
	DatesDeferred []string `json:"dates_deferred"`
}

// ReconcileService awards win points for scraped matches and marks days as ingested.
// Points are incremented, so the same batch reconciled twice is scored twice.
type ReconcileService struct {
	resolver  *NameResolver
	matches   match.Repository
	scores    playerscore.Repository
	ledger    ledger.Repository
	breaker   *resilience.CircuitBreaker
	cfg       ReconcileConfig
	validator *validator.Validate
	logger    *logging.Logger
}

func NewReconcileService(
	resolver *NameResolver,
	matches match.Repository,
	scores playerscore.Repository,
	ledgerRepo ledger.Repository,
	cfg ReconcileConfig,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.WinPoints <= 0 {
		cfg.WinPoints = playerscore.WinPoints
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.CommitMode == "" {
		cfg.CommitMode = LedgerCommitRun
	}
	var breaker *resilience.CircuitBreaker
	if cfg.RegistryBreaker.Enabled {
		breaker = resilience.NewCircuitBreakerFromConfig(cfg.RegistryBreaker)
	}
	return &ReconcileService{
		breaker:   breaker,
		resolver:  resolver,
		matches:   matches,
		scores:    scores,
		ledger:    ledgerRepo,
		cfg:       cfg,
		validator: validator.New(),
		logger:    logger,
	}
}

func (s *ReconcileService) Reconcile(ctx context.Context, batches []feed.DayBatch) (IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Reconcile")
	defer span.End()

	result := IngestionResult{
		UnresolvedNames: []string{},
		Errors:          []string{},
		DatesIngested:   []string{},
		DatesDeferred:   []string{},
	}
	for idx := range batches {
		if err := s.validator.Struct(batches[idx]); err != nil {
			return result, fmt.Errorf("%w: day batch %d: %v", ErrInvalidInput, idx, err)
		}
	}

	unresolved := make(map[string]struct{})
	labels := make([]string, 0, len(batches))
	for _, batch := range batches {
		s.logger.InfoContext(ctx, "reconciling day", "day", batch.CalendarLabel, "matches", len(batch.Matches))
		day := match.CalendarDay(batch.ScrapedAt, s.cfg.Location)

		rejected := false
		for _, item := range batch.Matches {
			if s.reconcileMatch(ctx, batch.CalendarLabel, day, item, &result, unresolved) {
				rejected = true
			}
		}
		if rejected {
			// Matches the breaker refused were never written; the next run must see the day again.
			s.logger.WarnContext(ctx, "day kept out of ledger, registry writes were rejected", "day", batch.CalendarLabel)
			result.DatesDeferred = append(result.DatesDeferred, batch.CalendarLabel)
			continue
		}

		if s.cfg.CommitMode == LedgerCommitDay {
			if err := s.commit(ctx, []string{batch.CalendarLabel}); err != nil {
				markSpanError(span, err)
				result.UnresolvedNames = sortedNames(unresolved)
				return result, err
			}
			result.DatesIngested = append(result.DatesIngested, batch.CalendarLabel)
			continue
		}
		labels = append(labels, batch.CalendarLabel)
	}
	result.UnresolvedNames = sortedNames(unresolved)

	if s.cfg.CommitMode == LedgerCommitRun && len(labels) > 0 {
		if err := s.commit(ctx, labels); err != nil {
			markSpanError(span, err)
			return result, err
		}
		result.DatesIngested = labels
	}

	return result, nil
}

func (s *ReconcileService) reconcileMatch(
	ctx context.Context,
	label string,
	day time.Time,
	item feed.CompletedMatch,
	result *IngestionResult,
	unresolved map[string]struct{},
) (rejected bool) {
	winner, err := s.resolver.Resolve(ctx, item.WinnerName)
	if err != nil {
		s.recordError(ctx, result, item, err)
		return false
	}
	if !winner.Found() {
		s.logger.InfoContext(ctx, "winner not found in registry", "day", label, "name", item.WinnerName)
		unresolved[item.WinnerName] = struct{}{}
		result.SkippedUnresolved++
		return false
	}

	// The opponent is resolved for reporting only; it never blocks scoring.
	loser := item.LoserName()
	if loser != "" {
		if opponent, err := s.resolver.Resolve(ctx, loser); err != nil {
			s.logger.WarnContext(ctx, "resolve opponent failed", "name", loser, "error", err)
		} else if !opponent.Found() {
			unresolved[loser] = struct{}{}
		}
	}

	var (
		record  match.Match
		created bool
	)
	err = s.breaker.Execute(func() (err error) {
		record, created, err = s.matches.Upsert(ctx, item.Tournament, day)
		return err
	})
	if err != nil {
		s.recordError(ctx, result, item, fmt.Errorf("upsert match: %w", err))
		return errors.Is(err, resilience.ErrCircuitOpen)
	}
	if created {
		result.NewMatchesCreated++
	}

	err = s.breaker.Execute(func() error {
		_, err := s.scores.Increment(ctx, record.ID, winner.Player.ID, s.cfg.WinPoints)
		return err
	})
	if err != nil {
		s.recordError(ctx, result, item, fmt.Errorf("award points: %w", err))
		return errors.Is(err, resilience.ErrCircuitOpen)
	}

	result.MatchesProcessed++
	result.PointsAwarded += s.cfg.WinPoints
	s.logger.InfoContext(ctx, "awarded points",
		"points", s.cfg.WinPoints,
		"winner", item.WinnerName,
		"player_id", winner.Player.ID,
		"opponent", loser,
		"match_id", record.ID,
		"tier", winner.Tier.String(),
	)
	return false
}

func (s *ReconcileService) recordError(ctx context.Context, result *IngestionResult, item feed.CompletedMatch, err error) {
	message := fmt.Sprintf("Error processing match %s: %v", item.Tournament, err)
	result.Errors = append(result.Errors, message)
	s.logger.ErrorContext(ctx, "process match failed",
		"tournament", item.Tournament,
		"home", item.HomeName,
		"away", item.AwayName,
		"error", err,
	)
}

func (s *ReconcileService) commit(ctx context.Context, labels []string) error {
	if err := s.ledger.RecordIngestedDates(ctx, labels); err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerCommit, err)
	}
	return nil
}

func sortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
