// Package tracker runs one price observation against a product page.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/law-makers/pricetrack/internal/detect"
	"github.com/law-makers/pricetrack/internal/diagnostics"
	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/history"
	"github.com/law-makers/pricetrack/internal/price"
	"github.com/law-makers/pricetrack/internal/ratelimit"
	"github.com/law-makers/pricetrack/internal/runctx"
	urlutil "github.com/law-makers/pricetrack/internal/utils/url"
)

// Page element locators
var (
	InterstitialLocator = engine.Text("Continue shopping")
	BodyLocator         = engine.CSS("body")
	TitleLocator        = engine.ID("productTitle")
)

// Options wires a Tracker. Launcher, Store and Capturer are required.
type Options struct {
	Launcher  engine.Launcher
	Store     history.Store
	Capturer  diagnostics.Capturer
	Collector *price.Collector
	Detector  *detect.Detector
	Pacer     ratelimit.RateLimiter

	// HomeURL overrides the storefront page visited first.
	HomeURL string

	ShortWait time.Duration
	LongWait  time.Duration

	// Now stamps observations; defaults to time.Now.
	Now func() time.Time
}

// Tracker drives the run: home, interstitial, product, body, interception
// check, title, price, record.
type Tracker struct {
	launcher  engine.Launcher
	store     history.Store
	capturer  diagnostics.Capturer
	collector *price.Collector
	detector  *detect.Detector
	pacer     ratelimit.RateLimiter
	homeURL   string
	short     time.Duration
	long      time.Duration
	now       func() time.Time
}

// New creates a Tracker
func New(opts Options) *Tracker {
	if opts.Collector == nil {
		opts.Collector = price.NewCollector(nil, opts.ShortWait, opts.LongWait)
	}
	if opts.Detector == nil {
		opts.Detector = detect.New()
	}
	if opts.Pacer == nil {
		opts.Pacer = ratelimit.NewHostPacer(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Tracker{
		launcher:  opts.Launcher,
		store:     opts.Store,
		capturer:  opts.Capturer,
		collector: opts.Collector,
		detector:  opts.Detector,
		pacer:     opts.Pacer,
		homeURL:   opts.HomeURL,
		short:     opts.ShortWait,
		long:      opts.LongWait,
		now:       opts.Now,
	}
}

// Result is what Inspect extracted from a loaded page.
type Result struct {
	Title      string
	Candidate  price.Candidate
	Collection price.Collection
}

// Run performs one observation of productURL and appends it to the store.
// Any failure after the browser starts triggers one diagnostics capture.
// The browser session is closed on every path.
func (t *Tracker) Run(ctx context.Context, productURL string) (*history.Observation, error) {
	ctx = runctx.WithRun(ctx, productURL)
	logger := runctx.Logger(ctx)

	if err := urlutil.ValidateURL(productURL); err != nil {
		return nil, newError(CodeNavigation, StageStart, "invalid product URL", err)
	}

	logger.Info().Str("url", productURL).Str("driver", t.launcher.Name()).Msg("Starting run")

	session, err := t.launcher.Launch(ctx)
	if err != nil {
		return nil, newError(CodeUnexpected, StageStart, "browser launch failed", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Browser session close failed")
		}
	}()

	obs, err := t.drive(ctx, session, productURL)
	if err != nil {
		var te *Error
		if !errors.As(err, &te) {
			te = newError(CodeUnexpected, "", "run failed", err)
		}
		logger.Error().Err(err).
			Str("code", string(te.Code)).
			Str("stage", string(te.Stage)).
			Msg("Run failed")

		report := t.capturer.Capture(ctx, session)
		te.Diagnostics = &report
		return nil, te
	}

	logger.Info().
		Str("title", obs.Title).
		Str("price", obs.PriceText).
		Dur("elapsed_ms", runctx.Elapsed(ctx)).
		Msg("Run recorded")
	return obs, nil
}

// drive walks the states after launch. Panics become UNEXPECTED failures.
func (t *Tracker) drive(ctx context.Context, page engine.Page, productURL string) (obs *history.Observation, err error) {
	stage := StageHome
	defer func() {
		if r := recover(); r != nil {
			err = newError(CodeUnexpected, stage, fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	home := t.homeURL
	if home == "" {
		home, _ = urlutil.HomeURL(productURL)
	}
	if err := t.navigate(ctx, page, home); err != nil {
		return nil, newError(CodeNavigation, stage, "home page load failed", err).WithDetail("url", home)
	}

	stage = StageInterstitial
	_ = t.dismissInterstitial(ctx, page)

	stage = StageProduct
	if err := t.navigate(ctx, page, productURL); err != nil {
		return nil, newError(CodeNavigation, stage, "product page load failed", err).WithDetail("url", productURL)
	}

	stage = StageBody
	res, err := t.Inspect(ctx, page)
	if err != nil {
		return nil, err
	}

	stage = StageRecord
	o, err := history.NewObservation(res.Title, res.Candidate, productURL, t.now())
	if err != nil {
		return nil, newError(CodeUnexpected, stage, "observation incomplete", err)
	}
	if err := t.store.Append(ctx, o); err != nil {
		return nil, newError(CodeRecordFailed, stage, "history append failed", err)
	}

	return &o, nil
}

// Inspect extracts title and price from an already loaded page.
func (t *Tracker) Inspect(ctx context.Context, page engine.Page) (Result, error) {
	logger := runctx.Logger(ctx)

	if _, err := page.Query(ctx, BodyLocator, t.long); err != nil {
		if errors.Is(err, engine.ErrElementNotFound) {
			return Result{}, newError(CodeNavigation, StageBody, "page body did not render", err)
		}
		return Result{}, newError(CodeUnexpected, StageBody, "page body query failed", err)
	}

	content, err := page.Content(ctx)
	if err != nil {
		return Result{}, newError(CodeUnexpected, StageInterception, "read page content failed", err)
	}
	if marker, ok := t.detector.Match(content); ok {
		return Result{}, newError(CodeBlocked, StageInterception, "interception detected", nil).
			WithDetail("marker", marker)
	}

	title, err := t.title(ctx, page)
	if err != nil {
		return Result{}, err
	}
	logger.Debug().Str("stage", string(StageTitle)).Str("title", title).Msg("Title extracted")

	coll, err := t.collector.Collect(ctx, page)
	if errors.Is(err, price.ErrPriceNotFound) {
		return Result{}, newError(CodePriceNotFound, StagePrice, "price not found", err)
	}
	if err != nil {
		return Result{}, newError(CodeUnexpected, StagePrice, "price extraction failed", err)
	}

	cand, ok := price.Select(coll)
	if !ok {
		return Result{}, newError(CodePriceNotFound, StagePrice, "price not found", price.ErrPriceNotFound)
	}

	logger.Debug().
		Str("stage", string(StagePrice)).
		Str("probe", coll.Probe).
		Int("candidates", len(coll.Candidates)).
		Str("price", cand.Text).
		Msg("Price resolved")

	return Result{Title: title, Candidate: cand, Collection: coll}, nil
}

func (t *Tracker) title(ctx context.Context, page engine.Page) (string, error) {
	texts, err := page.Query(ctx, TitleLocator, t.long)
	if err != nil && !errors.Is(err, engine.ErrElementNotFound) {
		return "", newError(CodeUnexpected, StageTitle, "title query failed", err)
	}

	for _, s := range texts {
		if s = strings.TrimSpace(s); s != "" {
			return s, nil
		}
	}
	return "", newError(CodeTitleNotFound, StageTitle, "product title not found", err)
}

// dismissInterstitial clicks "Continue shopping" if it shows up.
func (t *Tracker) dismissInterstitial(ctx context.Context, page engine.Page) bool {
	logger := runctx.Logger(ctx)

	if err := page.ScriptClick(ctx, InterstitialLocator, t.short); err != nil {
		logger.Debug().Err(err).Str("stage", string(StageInterstitial)).Msg("No interstitial dismissed")
		return false
	}

	logger.Debug().Str("stage", string(StageInterstitial)).Msg("Interstitial dismissed")
	return true
}

func (t *Tracker) navigate(ctx context.Context, page engine.Page, url string) error {
	if err := t.pacer.Wait(ctx, url); err != nil {
		return fmt.Errorf("navigation pacing: %w", err)
	}

	logger := runctx.Logger(ctx)
	logger.Debug().Str("url", url).Msg("Navigating")
	return page.Navigate(ctx, url)
}
