package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-badminton/internal/config"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/match"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/player"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/playerscore"
	"github.com/riskibarqy/fantasy-badminton/internal/infrastructure/feed/flashscore"
	registrycache "github.com/riskibarqy/fantasy-badminton/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-badminton/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-badminton/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-badminton/internal/observability"
	basecache "github.com/riskibarqy/fantasy-badminton/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-badminton/internal/platform/id"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-badminton/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	players    player.Repository
	matches    match.Repository
	scores     playerscore.Repository
	ledger     ledger.Repository
	seed       func(ctx context.Context, items []player.Player) error
	invalidate func(ctx context.Context)
}

// App is the wired ingestion job.
type App struct {
	Config    config.Config
	Logger    *logging.Logger
	Ingestion *usecase.IngestionService
	Metrics   *observability.RunMetrics

	repos   repositories
	closers []func(context.Context) error
}

// New wires repositories, the feed opener and services. Without DB_URL the
// registry, scores and ledger live in memory for the life of the process.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewRunMetrics(),
	}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL empty, using in-memory registry seeded with starter players")
		a.repos = newMemoryRepositories()
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })
		a.repos = newPostgresRepositories(db)
	}
	if cfg.RegistryCacheTTL > 0 {
		cached := registrycache.NewPlayerRepository(a.repos.players, basecache.NewStore(cfg.RegistryCacheTTL))
		a.repos.players = cached
		a.repos.invalidate = cached.Invalidate
	}

	commitMode, err := usecase.ParseLedgerCommitMode(cfg.IngestLedgerMode)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	opener := flashscore.NewOpener(flashscore.Config{
		URL:            cfg.FeedURL,
		ReadySelector:  cfg.FeedReadySelector,
		UserAgent:      cfg.FeedUserAgent,
		Headless:       cfg.FeedHeadless,
		BlockResources: cfg.FeedBlockResources,
		PageTimeout:    cfg.FeedPageTimeout,
		ActionTimeout:  cfg.FeedActionTimeout,
		NavSettle:      cfg.FeedNavSettle,
		ScrollSettle:   cfg.FeedScrollSettle,
		OpenRetry: resilience.RetryConfig{
			MaxAttempts:     cfg.FeedOpenAttempts,
			InitialInterval: cfg.FeedOpenBackoff,
		},
	}, logger)

	resolver := usecase.NewNameResolver(a.repos.players, logger.Named("resolver"))
	scraper := usecase.NewScrapeService(opener, usecase.ScrapeConfig{
		LookbackDays: cfg.FeedLookbackDays,
		DayPause:     cfg.FeedDayPause,
		CloseSettle:  cfg.FeedCloseSettle,
	}, logger.Named("scraper"))
	reconciler := usecase.NewReconcileService(
		resolver,
		a.repos.matches,
		a.repos.scores,
		a.repos.ledger,
		usecase.ReconcileConfig{
			WinPoints:  cfg.IngestWinPoints,
			Location:   cfg.IngestTimezone,
			CommitMode: commitMode,
			RegistryBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.RegistryBreakerThreshold > 0,
				FailureThreshold: cfg.RegistryBreakerThreshold,
				OpenTimeout:      cfg.RegistryBreakerCooldown,
			},
		},
		logger.Named("reconciler"),
	)
	reporter := usecase.NewPlayerReportService(a.repos.players, cfg.ReportWorkers)

	a.Ingestion = usecase.NewIngestionService(
		a.repos.ledger,
		scraper,
		reconciler,
		reporter,
		idgen.NewUUIDGenerator(),
		logger.Named("ingestion"),
	)
	return a, nil
}

// Run executes one ingestion run and publishes its metrics. A failed push is only logged.
func (a *App) Run(ctx context.Context, opts usecase.RunOptions) (usecase.RunReport, error) {
	report, err := a.Ingestion.Run(ctx, opts)
	a.Metrics.Observe(report, err)

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if pushErr := a.Metrics.Push(pushCtx, a.Config.MetricsPushgateway, a.Config.MetricsPushJobName, a.Config.ServiceName); pushErr != nil {
		a.Logger.WarnContext(ctx, "push run metrics failed", "error", pushErr)
	}
	return report, err
}

// SeedPlayers writes the starter registry. It is the only path that creates players.
func (a *App) SeedPlayers(ctx context.Context) (int, error) {
	items := memory.SeedPlayers()
	if a.repos.seed == nil {
		return len(items), nil
	}
	if err := a.repos.seed(ctx, items); err != nil {
		return 0, fmt.Errorf("seed players: %w", err)
	}
	if a.repos.invalidate != nil {
		a.repos.invalidate(ctx)
	}
	return len(items), nil
}

func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func newMemoryRepositories() repositories {
	return repositories{
		players: memory.NewPlayerRepository(memory.SeedPlayers()),
		matches: memory.NewMatchRepository(),
		scores:  memory.NewPlayerScoreRepository(),
		ledger:  memory.NewLedgerRepository(),
	}
}

func newPostgresRepositories(db *sqlx.DB) repositories {
	players := postgres.NewPlayerRepository(db)
	return repositories{
		players: players,
		matches: postgres.NewMatchRepository(db, idgen.NewUUIDGenerator()),
		scores:  postgres.NewPlayerScoreRepository(db),
		ledger:  postgres.NewLedgerRepository(db),
		seed:    players.Seed,
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(
		"postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (a *App) ListLedger(ctx context.Context) ([]string, error) {
	return a.Ingestion.ListLedger(ctx)
}
