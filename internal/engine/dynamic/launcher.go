// internal/engine/dynamic/launcher.go
package dynamic

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/pricetrack/internal/config"
	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/engine/browser"
)

// Launcher starts Chrome through chromedp, one browser per session.
type Launcher struct {
	opts browser.Options
}

// NewLauncher creates a chromedp launcher
func NewLauncher(opts browser.Options) *Launcher {
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.WindowWidth <= 0 || opts.WindowHeight <= 0 {
		opts.WindowWidth, opts.WindowHeight = 1920, 1080
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = config.DefaultNavigationTimeout
	}
	return &Launcher{opts: opts}
}

// Name returns the name of this launcher
func (l *Launcher) Name() string {
	return "chromedp"
}

// allocatorOptions builds the exec allocator flags for one launch
func (l *Launcher) allocatorOptions(chromePath string) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("force-color-profile", "srgb"),
		chromedp.Flag("log-level", "3"),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.UserAgent(l.opts.UserAgent),
		chromedp.WindowSize(l.opts.WindowWidth, l.opts.WindowHeight),
	}

	if chromePath != "" {
		opts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, opts...)
	}

	if l.opts.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	if l.opts.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(l.opts.Proxy))
	}

	return opts
}

// Launch starts a browser and opens one tab.
func (l *Launcher) Launch(ctx context.Context) (engine.Session, error) {
	chromePath, err := browser.FindChrome(l.opts.ChromePath)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", chromePath).
		Str("version", browser.Version(chromePath)).
		Bool("headless", l.opts.Headless).
		Msg("Launching chrome")

	// The session outlives the launch call; per-call contexts bound each operation.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), l.allocatorOptions(chromePath)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	stop := context.AfterFunc(ctx, tabCancel)
	err = chromedp.Run(tabCtx)
	stop()
	if err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	log.Debug().Msg("Browser session ready")

	return &Session{
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		navTimeout:  l.opts.NavigationTimeout,
	}, nil
}
