// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/pricetrack/internal/config"
	"github.com/law-makers/pricetrack/internal/detect"
	"github.com/law-makers/pricetrack/internal/diagnostics"
	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/engine/browser"
	"github.com/law-makers/pricetrack/internal/engine/dynamic"
	"github.com/law-makers/pricetrack/internal/engine/rodengine"
	"github.com/law-makers/pricetrack/internal/engine/static"
	"github.com/law-makers/pricetrack/internal/history"
	"github.com/law-makers/pricetrack/internal/price"
	"github.com/law-makers/pricetrack/internal/ratelimit"
	"github.com/law-makers/pricetrack/internal/tracker"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation. Use Close() to release the
// history store on shutdown.
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	Launcher   engine.Launcher
	History    *history.CSVStore
	Mirror     *history.SQLiteStore
	Store      history.Store
	Capturer   *diagnostics.FileCapturer
	Detector   *detect.Detector
	Collector  *price.Collector
	Pacer      ratelimit.RateLimiter
	HTTPClient *http.Client
	Tracker    *tracker.Tracker
	startTime  time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Selects the page driver named by the config
//   - Opens the CSV history and, when configured, the SQLite mirror
//   - Creates the diagnostics capturer, detector, collector and pacer
//   - Wires everything into a Tracker
//
// No browser is started here; each tracker run launches its own session.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := log.With().Str("component", "app").Logger()

	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	launcher, err := newLauncher(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("driver", launcher.Name()).
		Bool("headless", cfg.Browser.Headless).
		Msg("Page driver selected")

	csvStore := history.NewCSVStore(cfg.History.Path)
	var store history.Store = csvStore
	var mirror *history.SQLiteStore
	if cfg.History.SQLitePath != "" {
		mirror, err = history.NewSQLite(ctx, cfg.History.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite mirror: %w", err)
		}
		store = history.NewMirroredStore(csvStore, mirror)
		logger.Debug().Str("path", cfg.History.SQLitePath).Msg("SQLite mirror enabled")
	}

	capturer := diagnostics.NewFileCapturer(cfg.Diagnostics.Dir, cfg.Timeouts.Navigation)
	detector := detect.New(cfg.Detect.ExtraMarkers...)
	collector := price.NewCollector(nil, cfg.Timeouts.Short, cfg.Timeouts.Long)
	pacer := ratelimit.NewHostPacer(cfg.Navigation.MinInterval)

	t := tracker.New(tracker.Options{
		Launcher:  launcher,
		Store:     store,
		Capturer:  capturer,
		Collector: collector,
		Detector:  detector,
		Pacer:     pacer,
		HomeURL:   cfg.HomeURL,
		ShortWait: cfg.Timeouts.Short,
		LongWait:  cfg.Timeouts.Long,
	})

	app := &Application{
		Config:     cfg,
		Logger:     &logger,
		Launcher:   launcher,
		History:    csvStore,
		Mirror:     mirror,
		Store:      store,
		Capturer:   capturer,
		Detector:   detector,
		Collector:  collector,
		Pacer:      pacer,
		HTTPClient: httpClient,
		Tracker:    t,
		startTime:  time.Now(),
	}

	logger.Debug().
		Str("history", cfg.History.Path).
		Str("diagnostics", cfg.Diagnostics.Dir).
		Msg("Application initialized successfully")
	return app, nil
}

func newHTTPClient(cfg *config.Config) (*http.Client, error) {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if cfg.Browser.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Browser.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", cfg.Browser.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Timeout:   cfg.Timeouts.Navigation,
		Transport: transport,
	}, nil
}

func newLauncher(cfg *config.Config, client *http.Client) (engine.Launcher, error) {
	opts := browser.Options{
		Headless:          cfg.Browser.Headless,
		ChromePath:        cfg.Browser.ChromePath,
		UserAgent:         cfg.Browser.UserAgent,
		Proxy:             cfg.Browser.Proxy,
		WindowWidth:       cfg.Browser.WindowWidth,
		WindowHeight:      cfg.Browser.WindowHeight,
		NavigationTimeout: cfg.Timeouts.Navigation,
	}

	switch cfg.Browser.Driver {
	case config.DriverChromedp, "":
		return dynamic.NewLauncher(opts), nil
	case config.DriverRod:
		return rodengine.NewLauncher(opts), nil
	case config.DriverStatic:
		ua := cfg.Browser.UserAgent
		if ua == "" {
			ua = config.DefaultUserAgent
		}
		return static.NewLauncher(client, ua), nil
	default:
		return nil, fmt.Errorf("unknown browser driver %q", cfg.Browser.Driver)
	}
}

// Close gracefully shuts down the application and all its resources.
// Errors from the history store are returned after idle connections are dropped.
func (a *Application) Close(ctx context.Context) error {
	var err error
	if a.Store != nil {
		if cerr := a.Store.Close(); cerr != nil {
			a.Logger.Warn().Err(cerr).Msg("Error closing history store")
			err = cerr
		}
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return err
}
