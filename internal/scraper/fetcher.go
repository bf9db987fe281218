package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"canpulse/internal/config"
)

// Fetcher returns the rendered markup of a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f(ctx, url)
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// ChromeFetcher loads pages in a fresh headless Chrome per call
type ChromeFetcher struct {
	cfg    config.ScraperConfig
	logger *slog.Logger
}

// NewChromeFetcher creates a fetcher; zero timeouts and selectors fall back
// to the package defaults
func NewChromeFetcher(cfg config.ScraperConfig, logger *slog.Logger) *ChromeFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = config.DefaultUserAgent
	}
	if cfg.MarkerSelector == "" {
		cfg.MarkerSelector = config.DefaultMarkerSelector
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = config.DefaultNavigationTimeout
	}
	if cfg.SelectorTimeout <= 0 {
		cfg.SelectorTimeout = config.DefaultSelectorTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChromeFetcher{cfg: cfg, logger: logger.With(slog.String("component", "chrome_fetcher"))}
}

// Fetch navigates to url, waits for the network to go idle and for the
// marker selector, then returns the document's outer HTML. Every failure,
// including a timeout, is a *SourceError.
func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.cfg.Headless),
		chromedp.UserAgent(f.cfg.UserAgent),
		chromedp.WindowSize(1366, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var html string
	start := time.Now()
	err := chromedp.Run(browserCtx,
		timedAction(f.logger, "Navigate", navigateAndWaitIdle(url, f.cfg.NavigationTimeout)),
		timedAction(f.logger, "WaitMarker", withTimeout(f.cfg.SelectorTimeout,
			chromedp.WaitReady(f.cfg.MarkerSelector, chromedp.ByQuery))),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		f.logger.WarnContext(ctx, "Page load failed",
			slog.String("url", url),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", &SourceError{URL: url, Err: err}
	}

	f.logger.InfoContext(ctx, "Page rendered",
		slog.String("url", url),
		slog.Int("html_bytes", len(html)),
		slog.Duration("elapsed", time.Since(start)))
	return html, nil
}

// navigateAndWaitIdle navigates and blocks until the navigated document
// reports the networkIdle lifecycle event, all within timeout. The listener
// is registered before navigating and only counts events for the frame and
// loader returned by Page.navigate, so idle events of about:blank or of
// iframes do not end the wait early.
func navigateAndWaitIdle(url string, timeout time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		waiter := newIdleWaiter()
		listenCtx, stop := context.WithCancel(ctx)
		defer stop()
		chromedp.ListenTarget(listenCtx, func(ev interface{}) {
			if e, ok := ev.(*page.EventLifecycleEvent); ok {
				waiter.observe(e.FrameID, e.LoaderID, e.Name)
			}
		})

		if err := page.SetLifecycleEventsEnabled(true).Do(ctx); err != nil {
			return fmt.Errorf("enable lifecycle events: %w", err)
		}

		frameID, loaderID, errorText, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return fmt.Errorf("navigate: %w", err)
		}
		if errorText != "" {
			return fmt.Errorf("navigate: %s", errorText)
		}

		if err := waiter.wait(ctx, frameID, loaderID); err != nil {
			return fmt.Errorf("waiting for network idle: %w", err)
		}
		return nil
	})
}

type idleKey struct {
	frame  cdp.FrameID
	loader cdp.LoaderID
}

// idleWaiter records networkIdle lifecycle events per frame and loader.
// Events may arrive before the navigation result names the loader to wait
// for, so they are kept rather than consumed.
type idleWaiter struct {
	mu     sync.Mutex
	seen   map[idleKey]bool
	notify chan struct{}
}

func newIdleWaiter() *idleWaiter {
	return &idleWaiter{seen: make(map[idleKey]bool), notify: make(chan struct{}, 1)}
}

func (w *idleWaiter) observe(frame cdp.FrameID, loader cdp.LoaderID, name string) {
	if name != "networkIdle" {
		return
	}
	w.mu.Lock()
	w.seen[idleKey{frame, loader}] = true
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

func (w *idleWaiter) idle(frame cdp.FrameID, loader cdp.LoaderID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if loader != "" {
		return w.seen[idleKey{frame, loader}]
	}
	// same-document navigations report no loader
	for k := range w.seen {
		if k.frame == frame {
			return true
		}
	}
	return false
}

// wait blocks until frame/loader went idle or ctx ends
func (w *idleWaiter) wait(ctx context.Context, frame cdp.FrameID, loader cdp.LoaderID) error {
	for {
		if w.idle(frame, loader) {
			return nil
		}
		select {
		case <-w.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func withTimeout(timeout time.Duration, act chromedp.Action) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return act.Do(ctx)
	})
}

func timedAction(logger *slog.Logger, name string, act chromedp.Action) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		start := time.Now()
		err := act.Do(ctx)
		logger.Debug("Browser action finished",
			slog.String("action", name),
			slog.Duration("duration", time.Since(start)),
			slog.Bool("ok", err == nil))
		return err
	})
}
