package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/feed"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/id"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
)

type RunOptions struct {
	// DryRun scrapes and reports without touching the registry or the ledger.
	DryRun bool
	// WithPlayerReport adds the scraped-vs-registry name report.
	WithPlayerReport bool
}

// RunReport is everything one ingestion run produced.
type RunReport struct {
	RunID        string             `json:"run_id"`
	StartedAt    time.Time          `json:"started_at"`
	FinishedAt   time.Time          `json:"finished_at"`
	DryRun       bool               `json:"dry_run"`
	TotalMatches int                `json:"total_matches"`
	DayBatches   []feed.DayBatch    `json:"day_batches"`
	Result       IngestionResult    `json:"result"`
	Players      *PlayerMatchReport `json:"players,omitempty"`
}

type dayScraper interface {
	Scrape(ctx context.Context, alreadyIngested ledger.Set) (feed.ScrapeResult, error)
}

type batchReconciler interface {
	Reconcile(ctx context.Context, batches []feed.DayBatch) (IngestionResult, error)
}

type playerReporter interface {
	Build(ctx context.Context, batches []feed.DayBatch) (PlayerMatchReport, error)
}

// IngestionService is the single entry point of a scrape-to-score run.
type IngestionService struct {
	ledger     ledger.Repository
	scraper    dayScraper
	reconciler batchReconciler
	reporter   playerReporter
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewIngestionService(
	ledgerRepo ledger.Repository,
	scraper dayScraper,
	reconciler batchReconciler,
	reporter playerReporter,
	idGen id.Generator,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		ledger:     ledgerRepo,
		scraper:    scraper,
		reconciler: reconciler,
		reporter:   reporter,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *IngestionService) Run(ctx context.Context, opts RunOptions) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Run")
	defer span.End()

	runID, err := s.idGen.NewID()
	if err != nil {
		return RunReport{}, fmt.Errorf("generate run id: %w", err)
	}
	report := RunReport{
		RunID:      runID,
		StartedAt:  s.now(),
		DryRun:     opts.DryRun,
		DayBatches: []feed.DayBatch{},
		Result: IngestionResult{
			UnresolvedNames: []string{},
			Errors:          []string{},
			DatesIngested:   []string{},
			DatesDeferred:   []string{},
		},
	}
	logger := s.logger.With("run_id", runID)

	labels, err := s.ledger.ListIngestedDates(ctx)
	if err != nil {
		markSpanError(span, err)
		return report, fmt.Errorf("list ingested dates: %w", err)
	}
	logger.InfoContext(ctx, "starting ingestion run", "already_ingested", len(labels), "dry_run", opts.DryRun)

	scraped, err := s.scraper.Scrape(ctx, ledger.NewSet(labels))
	if err != nil {
		markSpanError(span, err)
		return report, fmt.Errorf("scrape feed: %w", err)
	}
	report.DayBatches = scraped.DayBatches
	report.TotalMatches = scraped.TotalMatches

	if opts.WithPlayerReport && s.reporter != nil {
		players, err := s.reporter.Build(ctx, scraped.DayBatches)
		if err != nil {
			logger.WarnContext(ctx, "build player report failed", "error", err)
		} else {
			report.Players = &players
		}
	}

	switch {
	case opts.DryRun:
		logger.InfoContext(ctx, "dry run, skipping registry and ledger writes", "days", len(scraped.DayBatches), "matches", scraped.TotalMatches)
	case len(scraped.DayBatches) == 0:
		logger.InfoContext(ctx, "no new days to ingest")
	default:
		result, err := s.reconciler.Reconcile(ctx, scraped.DayBatches)
		report.Result = result
		if err != nil {
			markSpanError(span, err)
			report.FinishedAt = s.now()
			return report, fmt.Errorf("reconcile day batches: %w", err)
		}
	}

	report.FinishedAt = s.now()
	logger.InfoContext(ctx, "ingestion run finished",
		"days", len(report.DayBatches),
		"matches", report.TotalMatches,
		"processed", report.Result.MatchesProcessed,
		"points", report.Result.PointsAwarded,
		"new_matches", report.Result.NewMatchesCreated,
		"unresolved", len(report.Result.UnresolvedNames),
		"errors", len(report.Result.Errors),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}

// ListLedger returns ingested day labels, most recent first.
func (s *IngestionService) ListLedger(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ListLedger")
	defer span.End()

	labels, err := s.ledger.ListIngestedDates(ctx)
	if err != nil {
		markSpanError(span, err)
		return nil, fmt.Errorf("list ingested dates: %w", err)
	}
	return labels, nil
}
