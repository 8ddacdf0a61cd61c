package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-badminton/internal/domain/feed"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

// DefaultLookbackDays is the number of feed days visited per run.
const DefaultLookbackDays = 7

// FeedSession is one open, exclusively owned session on the results feed.
// Calls must not overlap.
type FeedSession interface {
	// StepBackward moves the feed one day back. false means no earlier day is reachable.
	StepBackward(ctx context.Context) bool
	DayLabel(ctx context.Context) (string, error)
	Snapshot(ctx context.Context) (feed.DaySnapshot, error)
	Close(ctx context.Context) error
}

// FeedOpener opens a session that is already configured and showing today's results.
type FeedOpener interface {
	Open(ctx context.Context) (FeedSession, error)
}

type ScrapeConfig struct {
	LookbackDays int
	// DayPause is waited between two visited days.
	DayPause time.Duration
	// CloseSettle lets in-flight network activity drain before the session is closed.
	CloseSettle time.Duration
}

// ScrapeService walks the feed backward over a fixed window and extracts
// completed matches for every day not yet in the ledger.
type ScrapeService struct {
	opener FeedOpener
	cfg    ScrapeConfig
	logger *logging.Logger
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration)
}

func NewScrapeService(opener FeedOpener, cfg ScrapeConfig, logger *logging.Logger) *ScrapeService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = DefaultLookbackDays
	}
	return &ScrapeService{
		opener: opener,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

func (s *ScrapeService) Scrape(ctx context.Context, alreadyIngested ledger.Set) (result feed.ScrapeResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScrapeService.Scrape")
	defer span.End()

	result = feed.ScrapeResult{
		DayBatches:     []feed.DayBatch{},
		IngestedLabels: []string{},
	}

	session, err := s.opener.Open(ctx)
	if err != nil {
		markSpanError(span, err)
		return result, fmt.Errorf("%w: %w", ErrSessionSetup, err)
	}
	defer func() {
		// The session is released even when ctx is already done.
		closeCtx := context.WithoutCancel(ctx)
		s.sleep(closeCtx, s.cfg.CloseSettle)
		if closeErr := session.Close(closeCtx); closeErr != nil {
			s.logger.WarnContext(ctx, "close feed session failed", "error", closeErr)
		}
	}()

	if !session.StepBackward(ctx) {
		s.logger.WarnContext(ctx, "feed cannot navigate to previous day, aborting run")
		return result, nil
	}

	seen := make(map[string]struct{}, s.cfg.LookbackDays)
	for day := 0; day < s.cfg.LookbackDays; day++ {
		label, err := session.DayLabel(ctx)
		if err != nil {
			markSpanError(span, err)
			return result, fmt.Errorf("read day label (day %d): %w", day+1, err)
		}

		_, duplicate := seen[label]
		switch {
		case strings.TrimSpace(label) == "":
			// Without a label the day cannot be recorded in the ledger.
			s.logger.WarnContext(ctx, "skip day without calendar label", "visited", day+1)
		case alreadyIngested.Contains(label):
			s.logger.InfoContext(ctx, "skip day already ingested", "day", label)
		case duplicate:
			s.logger.WarnContext(ctx, "skip day visited twice in this run", "day", label)
		default:
			batch, err := s.extractDay(ctx, session, label)
			if err != nil {
				markSpanError(span, err)
				return result, err
			}
			seen[label] = struct{}{}
			result.DayBatches = append(result.DayBatches, batch)
			result.IngestedLabels = append(result.IngestedLabels, label)
			result.TotalMatches += len(batch.Matches)
			s.logger.InfoContext(ctx, "extracted day", "day", label, "matches", len(batch.Matches))
		}

		if day == s.cfg.LookbackDays-1 {
			break
		}
		s.sleep(ctx, s.cfg.DayPause)
		if !session.StepBackward(ctx) {
			s.logger.InfoContext(ctx, "reached earliest available day", "day", label, "visited", day+1)
			break
		}
	}

	return result, nil
}

func (s *ScrapeService) extractDay(ctx context.Context, session FeedSession, label string) (feed.DayBatch, error) {
	snapshot, err := session.Snapshot(ctx)
	if err != nil {
		return feed.DayBatch{}, fmt.Errorf("snapshot day %q: %w", label, err)
	}

	var matches []feed.CompletedMatch
	if recovered := panics.Try(func() {
		matches = feed.ExtractCompletedMatches(snapshot, label)
	}); recovered != nil {
		return feed.DayBatch{}, fmt.Errorf("extract day %q: %w", label, recovered.AsError())
	}

	return feed.DayBatch{
		CalendarLabel: label,
		ScrapedAt:     s.now(),
		Matches:       matches,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
