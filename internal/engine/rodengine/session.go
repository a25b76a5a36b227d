package rodengine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/engine/browser"
)

// Session drives a single rod page.
type Session struct {
	browser    *rod.Browser
	page       *rod.Page
	launcher   *launcher.Launcher
	navTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Navigate loads url and waits for the load event
func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx).Timeout(s.navTimeout)
	defer p.CancelTimeout()

	start := time.Now()
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait for load %s: %w", url, err)
	}

	log.Debug().Str("url", url).Dur("elapsed_ms", time.Since(start)).Msg("Navigation completed")
	return nil
}

// find waits for the first match of loc, then returns every match.
func (s *Session) find(ctx context.Context, loc engine.Locator, timeout time.Duration) (rod.Elements, error) {
	p := s.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	var (
		els rod.Elements
		err error
	)

	switch loc.Kind {
	case engine.ByText:
		xp := browser.TextXPath(loc.Value)
		if _, err = p.ElementX(xp); err == nil {
			els, err = p.ElementsX(xp)
		}
	default:
		sel, serr := browser.CSSSelector(loc)
		if serr != nil {
			return nil, serr
		}
		if _, err = p.Element(sel); err == nil {
			els, err = p.Elements(sel)
		}
	}

	if err != nil {
		return nil, classify(ctx, err)
	}
	if len(els) == 0 {
		return nil, engine.ErrElementNotFound
	}
	return els, nil
}

// Query returns the text content of every element matching loc
func (s *Session) Query(ctx context.Context, loc engine.Locator, timeout time.Duration) ([]string, error) {
	els, err := s.find(ctx, loc, timeout)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(els))
	for _, el := range els {
		v, err := el.Context(ctx).Property("textContent")
		if err != nil {
			return nil, classify(ctx, err)
		}
		texts = append(texts, strings.TrimSpace(v.Str()))
	}
	return texts, nil
}

// ScriptClick clicks the first element matching loc from script
func (s *Session) ScriptClick(ctx context.Context, loc engine.Locator, timeout time.Duration) error {
	els, err := s.find(ctx, loc, timeout)
	if err != nil {
		return err
	}

	if _, err := els.First().Context(ctx).Eval(`() => this.click()`); err != nil {
		return fmt.Errorf("script click %s: %w", loc, classify(ctx, err))
	}
	return nil
}

// Content returns the document HTML
func (s *Session) Content(ctx context.Context) (string, error) {
	p := s.page.Context(ctx).Timeout(s.navTimeout)
	defer p.CancelTimeout()

	html, err := p.HTML()
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return html, nil
}

// Screenshot captures the visible viewport as PNG
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	p := s.page.Context(ctx).Timeout(s.navTimeout)
	defer p.CancelTimeout()

	buf, err := p.Screenshot(false, nil)
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

// Close closes the browser and kills its process
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.browser.Close()
		s.launcher.Kill()
		log.Debug().Msg("Browser session closed")
	})
	return s.closeErr
}

// classify maps a rod wait that hit its deadline to a probe miss.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return engine.ErrElementNotFound
	}
	var notFound *rod.ElementNotFoundError
	if errors.As(err, &notFound) {
		return engine.ErrElementNotFound
	}
	return err
}
