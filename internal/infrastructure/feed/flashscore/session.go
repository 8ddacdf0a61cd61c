package flashscore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-badminton/internal/domain/feed"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
)

const popupClickTimeout = 2 * time.Second

// Session owns one browser tab on the results page. It is not safe for concurrent use.
type Session struct {
	cfg           Config
	logger        *logging.Logger
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
	closeOnce     sync.Once
}

// StepBackward clicks the previous-day arrow. A missing or disabled arrow, or a failed
// click, reports false.
func (s *Session) StepBackward(ctx context.Context) bool {
	s.closePopups(ctx)

	var nodes []*cdp.Node
	if err := s.run(ctx, s.cfg.ActionTimeout,
		chromedp.Nodes(selPrevDayArrow, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
	); err != nil {
		s.logger.WarnContext(ctx, "query previous day control failed", "error", err)
		return false
	}
	if len(nodes) == 0 {
		s.logger.InfoContext(ctx, "previous day control not found")
		return false
	}
	if isDisabledControl(nodes[0]) {
		s.logger.InfoContext(ctx, "previous day control is disabled")
		return false
	}

	if err := s.run(ctx, s.cfg.ActionTimeout+s.cfg.ScrollSettle+s.cfg.NavSettle,
		chromedp.ScrollIntoView(selPrevDayArrow, chromedp.ByQuery),
		chromedp.Sleep(s.cfg.ScrollSettle),
		chromedp.MouseClickNode(nodes[0]),
		chromedp.Sleep(s.cfg.NavSettle),
	); err != nil {
		s.logger.WarnContext(ctx, "click previous day control failed", "error", err)
		return false
	}
	return true
}

// DayLabel returns the day picker text, or "" when the picker is missing.
func (s *Session) DayLabel(ctx context.Context) (string, error) {
	var label string
	if err := s.run(ctx, s.cfg.ActionTimeout, chromedp.Evaluate(dayLabelScript, &label)); err != nil {
		return "", crerr.Wrap(err, "read day picker label")
	}
	return strings.TrimSpace(label), nil
}

func (s *Session) Snapshot(ctx context.Context) (feed.DaySnapshot, error) {
	var html string
	if err := s.run(ctx, s.cfg.PageTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, crerr.Wrap(err, "capture results page")
	}
	return ParseDaySnapshot(strings.NewReader(html))
}

// Close shuts the browser down. Calling it more than once is a no-op.
func (s *Session) Close(_ context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		err = chromedp.Cancel(s.browserCtx)
		s.cancelBrowser()
		s.cancelAlloc()
	})
	if err != nil && !crerr.Is(err, context.Canceled) {
		return crerr.Wrap(err, "close browser")
	}
	return nil
}

// closePopups clicks anything that looks like an overlay close button. Failures are ignored.
func (s *Session) closePopups(ctx context.Context) {
	for _, selector := range popupSelectors {
		var nodes []*cdp.Node
		if err := s.run(ctx, popupClickTimeout,
			chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
		); err != nil {
			continue
		}
		for _, node := range nodes {
			if err := s.run(ctx, popupClickTimeout,
				chromedp.MouseClickNode(node),
				chromedp.Sleep(s.cfg.ScrollSettle),
			); err != nil {
				s.logger.DebugContext(ctx, "popup not clickable", "selector", selector)
			}
		}
	}
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	actionCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(actionCtx, actions...)
}

func isDisabledControl(node *cdp.Node) bool {
	if _, ok := node.Attribute("disabled"); ok {
		return true
	}
	for _, class := range strings.Fields(node.AttributeValue("class")) {
		if class == "disabled" {
			return true
		}
	}
	return node.AttributeValue("aria-hidden") == "true"
}
