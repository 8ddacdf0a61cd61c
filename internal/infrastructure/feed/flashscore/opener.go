package flashscore

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-badminton/internal/usecase"
)

type Config struct {
	URL            string
	ReadySelector  string
	UserAgent      string
	Headless       bool
	BlockResources bool
	PageTimeout    time.Duration
	ActionTimeout  time.Duration
	// NavSettle is waited after a day change before the page is read.
	NavSettle    time.Duration
	ScrollSettle time.Duration
	// OpenRetry bounds attempts to load the results page. Zero attempts means one;
	// a browser that cannot start is never retried.
	OpenRetry resilience.RetryConfig
}

// Opener launches a headless Chrome per session.
type Opener struct {
	cfg    Config
	logger *logging.Logger
}

func NewOpener(cfg Config, logger *logging.Logger) *Opener {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.OpenRetry.MaxAttempts < 1 {
		cfg.OpenRetry.MaxAttempts = 1
	}
	return &Opener{cfg: cfg, logger: logger.Named("flashscore")}
}

// Open starts the browser and loads the results page. Load failures are only
// retried when OpenRetry allows more than one attempt. On error nothing is left running.
func (o *Opener) Open(ctx context.Context) (usecase.FeedSession, error) {
	return resilience.Retry(ctx, o.cfg.OpenRetry, o.openOnce, func(attempt int, err error, wait time.Duration) {
		o.logger.WarnContext(ctx, "open results feed failed, retrying",
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	})
}

func (o *Opener) openOnce(ctx context.Context) (usecase.FeedSession, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), o.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithErrorf(func(format string, args ...any) {
		o.logger.Zap().Sugar().Debugf(format, args...)
	}))

	session := &Session{
		cfg:           o.cfg,
		logger:        o.logger,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}

	// The browser is bound to the context of its first Run, so start it without a deadline.
	if err := chromedp.Run(browserCtx); err != nil {
		_ = session.Close(ctx)
		return nil, resilience.Permanent(crerr.Wrap(err, "start browser"))
	}

	actions := make([]chromedp.Action, 0, 4)
	if o.cfg.BlockResources {
		actions = append(actions, network.Enable(), network.SetBlockedURLs(blockedURLPatterns))
	}
	actions = append(actions,
		chromedp.Navigate(o.cfg.URL),
		chromedp.WaitVisible(o.cfg.ReadySelector, chromedp.ByQuery),
	)

	o.logger.InfoContext(ctx, "opening results feed", "url", o.cfg.URL)
	if err := session.run(ctx, o.cfg.PageTimeout+o.cfg.ActionTimeout, actions...); err != nil {
		_ = session.Close(ctx)
		return nil, crerr.Wrapf(err, "load %s", o.cfg.URL)
	}
	return session, nil
}

func (o *Opener) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption(nil), chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1200, 800),
	)
	if !o.cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if o.cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(o.cfg.UserAgent))
	}
	if o.cfg.BlockResources {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}
	return opts
}
