// Package rodengine implements the rendered-DOM provider on go-rod.
package rodengine

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/pricetrack/internal/config"
	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/engine/browser"
)

// Launcher starts Chrome through rod's launcher.
type Launcher struct {
	opts browser.Options
}

// NewLauncher creates a rod launcher
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
	return "rod"
}

// Launch starts a browser, connects to it and opens one page.
func (l *Launcher) Launch(ctx context.Context) (engine.Session, error) {
	chromePath, err := browser.FindChrome(l.opts.ChromePath)
	if err != nil {
		return nil, err
	}

	// The browser outlives the launch call; cancelling ctx only aborts startup.
	lc := launcher.New().
		Context(context.Background()).
		Bin(chromePath).
		Headless(l.opts.Headless).
		NoSandbox(true)

	if l.opts.Proxy != "" {
		lc = lc.Proxy(l.opts.Proxy)
	}

	lc.Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", l.opts.WindowWidth, l.opts.WindowHeight))
	lc.Set(flags.Flag("disable-dev-shm-usage"))
	lc.Set(flags.Flag("disable-extensions"))
	lc.Set(flags.Flag("no-first-run"))

	log.Debug().
		Str("path", chromePath).
		Str("version", browser.Version(chromePath)).
		Bool("headless", l.opts.Headless).
		Msg("Launching chrome via rod")

	stop := context.AfterFunc(ctx, lc.Kill)
	controlURL, err := lc.Launch()
	stop()
	if err == nil && ctx.Err() != nil {
		lc.Kill()
		err = ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		lc.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		lc.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: l.opts.UserAgent}); err != nil {
		log.Warn().Err(err).Msg("Failed to override user agent")
	}

	log.Debug().Str("control_url", controlURL).Msg("Browser session ready")

	return &Session{
		browser:    b,
		page:       page,
		launcher:   lc,
		navTimeout: l.opts.NavigationTimeout,
	}, nil
}
