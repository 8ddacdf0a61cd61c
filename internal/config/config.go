package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
)

const (
	defaultFeedURL           = "https://www.flashscore.com/badminton/"
	defaultFeedReadySelector = ".sportName.badminton"
	defaultFeedUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config stores runtime configuration for the ingestion CLI.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	LogLevel                logging.Level
	DBURL                   string
	DBDisablePreparedBinary bool

	FeedURL            string
	FeedReadySelector  string
	FeedHeadless       bool
	FeedUserAgent      string
	FeedPageTimeout    time.Duration
	FeedActionTimeout  time.Duration
	FeedLookbackDays   int
	FeedNavSettle      time.Duration
	FeedScrollSettle   time.Duration
	FeedDayPause       time.Duration
	FeedCloseSettle    time.Duration
	FeedBlockResources bool
	FeedOpenAttempts   int
	FeedOpenBackoff    time.Duration

	IngestTimezone   *time.Location
	IngestWinPoints  int
	IngestLedgerMode string
	ReportWorkers    int

	RegistryCacheTTL         time.Duration
	RegistryBreakerThreshold int
	RegistryBreakerCooldown  time.Duration

	UptraceEnabled     bool
	UptraceDSN         string
	MetricsPushgateway string
	MetricsPushJobName string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        strings.TrimSpace(getEnv("APP_SERVICE_NAME", "fantasy-badminton-ingest")),
		ServiceVersion:     strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		FeedURL:            strings.TrimSpace(getEnv("FEED_URL", defaultFeedURL)),
		FeedReadySelector:  strings.TrimSpace(getEnv("FEED_READY_SELECTOR", defaultFeedReadySelector)),
		FeedUserAgent:      strings.TrimSpace(getEnv("FEED_USER_AGENT", defaultFeedUserAgent)),
		MetricsPushgateway: strings.TrimRight(strings.TrimSpace(getEnv("METRICS_PUSHGATEWAY_URL", "")), "/"),
		MetricsPushJobName: strings.TrimSpace(getEnv("METRICS_PUSH_JOB", "fantasy_badminton_ingest")),
	}
	if appEnv == EnvProd && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when APP_ENV=%s", EnvProd)
	}

	cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	if cfg.FeedURL == "" {
		return Config{}, fmt.Errorf("FEED_URL cannot be empty")
	}
	cfg.FeedHeadless, err = strconv.ParseBool(getEnv("FEED_HEADLESS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_HEADLESS: %w", err)
	}
	cfg.FeedBlockResources, err = strconv.ParseBool(getEnv("FEED_BLOCK_RESOURCES", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_BLOCK_RESOURCES: %w", err)
	}

	cfg.FeedPageTimeout, err = getEnvAsPositiveDuration("FEED_PAGE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	cfg.FeedActionTimeout, err = getEnvAsPositiveDuration("FEED_ACTION_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	cfg.FeedNavSettle, err = getEnvAsDuration("FEED_NAV_SETTLE", "2s")
	if err != nil {
		return Config{}, err
	}
	cfg.FeedScrollSettle, err = getEnvAsDuration("FEED_SCROLL_SETTLE", "500ms")
	if err != nil {
		return Config{}, err
	}
	cfg.FeedDayPause, err = getEnvAsDuration("FEED_DAY_PAUSE", "1s")
	if err != nil {
		return Config{}, err
	}
	cfg.FeedCloseSettle, err = getEnvAsDuration("FEED_CLOSE_SETTLE", "3s")
	if err != nil {
		return Config{}, err
	}

	cfg.FeedLookbackDays, err = getEnvAsInt("FEED_LOOKBACK_DAYS", 7)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_LOOKBACK_DAYS: %w", err)
	}
	if cfg.FeedLookbackDays < 1 {
		return Config{}, fmt.Errorf("FEED_LOOKBACK_DAYS must be >= 1")
	}

	cfg.IngestTimezone, err = time.LoadLocation(strings.TrimSpace(getEnv("INGEST_TIMEZONE", "UTC")))
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_TIMEZONE: %w", err)
	}
	cfg.IngestWinPoints, err = getEnvAsInt("INGEST_WIN_POINTS", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_WIN_POINTS: %w", err)
	}
	if cfg.IngestWinPoints < 1 {
		return Config{}, fmt.Errorf("INGEST_WIN_POINTS must be >= 1")
	}
	cfg.IngestLedgerMode = strings.ToLower(strings.TrimSpace(getEnv("INGEST_LEDGER_COMMIT", "run")))
	switch cfg.IngestLedgerMode {
	case "run", "day":
	default:
		return Config{}, fmt.Errorf("invalid INGEST_LEDGER_COMMIT %q: valid values are run, day", cfg.IngestLedgerMode)
	}
	cfg.ReportWorkers, err = getEnvAsInt("INGEST_REPORT_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_REPORT_WORKERS: %w", err)
	}
	if cfg.ReportWorkers < 1 {
		return Config{}, fmt.Errorf("INGEST_REPORT_WORKERS must be >= 1")
	}

	cfg.FeedOpenAttempts, err = getEnvAsInt("FEED_OPEN_ATTEMPTS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FEED_OPEN_ATTEMPTS: %w", err)
	}
	if cfg.FeedOpenAttempts < 1 {
		return Config{}, fmt.Errorf("FEED_OPEN_ATTEMPTS must be >= 1")
	}
	cfg.FeedOpenBackoff, err = getEnvAsPositiveDuration("FEED_OPEN_BACKOFF", "2s")
	if err != nil {
		return Config{}, err
	}

	cfg.RegistryCacheTTL, err = getEnvAsDuration("REGISTRY_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	cfg.RegistryBreakerThreshold, err = getEnvAsInt("REGISTRY_BREAKER_THRESHOLD", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse REGISTRY_BREAKER_THRESHOLD: %w", err)
	}
	if cfg.RegistryBreakerThreshold < 0 {
		return Config{}, fmt.Errorf("REGISTRY_BREAKER_THRESHOLD must be >= 0")
	}
	cfg.RegistryBreakerCooldown, err = getEnvAsPositiveDuration("REGISTRY_BREAKER_COOLDOWN", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out < 0 {
		return 0, fmt.Errorf("%s must be >= 0", key)
	}
	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := getEnvAsDuration(key, fallback)
	if err != nil {
		return 0, err
	}
	if out == 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
