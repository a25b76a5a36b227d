// Package diagnostics saves the state of a page after a failed run.
package diagnostics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/runctx"
)

// Fixed artefact names, overwritten by each failing run.
const (
	PageSourceFile = "page_source.html"
	ScreenshotFile = "screenshot.png"
)

// Report describes what a capture wrote. Each artefact succeeds or fails on its own.
type Report struct {
	PageSourcePath string
	ScreenshotPath string
	PageSourceErr  error
	ScreenshotErr  error
}

// OK reports whether both artefacts were written
func (r Report) OK() bool {
	return r.PageSourceErr == nil && r.ScreenshotErr == nil
}

// Written returns the paths of the artefacts that were saved
func (r Report) Written() []string {
	var paths []string
	if r.PageSourcePath != "" && r.PageSourceErr == nil {
		paths = append(paths, r.PageSourcePath)
	}
	if r.ScreenshotPath != "" && r.ScreenshotErr == nil {
		paths = append(paths, r.ScreenshotPath)
	}
	return paths
}

// Capturer captures diagnostics for a page.
type Capturer interface {
	Capture(ctx context.Context, page engine.Page) Report
}

// FileCapturer writes artefacts into a directory.
type FileCapturer struct {
	dir     string
	timeout time.Duration
}

// NewFileCapturer creates a capturer writing into dir. Each read from the
// page is bounded by timeout.
func NewFileCapturer(dir string, timeout time.Duration) *FileCapturer {
	if dir == "" {
		dir = "."
	}
	return &FileCapturer{dir: dir, timeout: timeout}
}

// Capture writes the page markup and a viewport screenshot. Failures are
// logged and reported, never returned.
func (c *FileCapturer) Capture(ctx context.Context, page engine.Page) Report {
	logger := runctx.Logger(ctx)

	// The run may have failed because ctx expired; artefacts are still wanted.
	ctx = context.WithoutCancel(ctx)

	var r Report
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		err = fmt.Errorf("create diagnostics dir: %w", err)
		r.PageSourceErr, r.ScreenshotErr = err, err
		logger.Error().Err(err).Str("dir", c.dir).Msg("Diagnostics capture failed")
		return r
	}

	r.PageSourcePath = filepath.Join(c.dir, PageSourceFile)
	r.PageSourceErr = c.write(ctx, r.PageSourcePath, func(ctx context.Context) ([]byte, error) {
		html, err := page.Content(ctx)
		return []byte(html), err
	})
	if r.PageSourceErr != nil {
		logger.Warn().Err(r.PageSourceErr).Str("file", r.PageSourcePath).Msg("Could not save page source")
	} else {
		logger.Info().Str("file", r.PageSourcePath).Msg("Page source saved")
	}

	r.ScreenshotPath = filepath.Join(c.dir, ScreenshotFile)
	r.ScreenshotErr = c.write(ctx, r.ScreenshotPath, page.Screenshot)
	if r.ScreenshotErr != nil {
		logger.Warn().Err(r.ScreenshotErr).Str("file", r.ScreenshotPath).Msg("Could not save screenshot")
	} else {
		logger.Info().Str("file", r.ScreenshotPath).Msg("Screenshot saved")
	}

	return r
}

func (c *FileCapturer) write(ctx context.Context, path string, read func(context.Context) ([]byte, error)) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	data, err := read(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
