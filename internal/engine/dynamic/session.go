// internal/engine/dynamic/session.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/engine/browser"
)

const scriptClick = `function() { this.click(); }`

// Session drives a single chromedp tab.
type Session struct {
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc
	navTimeout  time.Duration

	closeOnce sync.Once
	closeErr  error
}

// bounded derives an operation context from the tab that also ends when
// the caller's ctx does.
func (s *Session) bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	opCtx, cancel := context.WithTimeout(s.tabCtx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}

// Navigate loads url in the tab
func (s *Session) Navigate(ctx context.Context, url string) error {
	opCtx, cancel := s.bounded(ctx, s.navTimeout)
	defer cancel()

	start := time.Now()
	if err := chromedp.Run(opCtx, chromedp.Navigate(url)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("navigate %s: %w", url, err)
	}

	log.Debug().Str("url", url).Dur("elapsed_ms", time.Since(start)).Msg("Navigation completed")
	return nil
}

// find waits for at least one node matching loc.
func (s *Session) find(ctx, opCtx context.Context, loc engine.Locator) ([]*cdp.Node, error) {
	var sel string
	var by chromedp.QueryOption
	switch loc.Kind {
	case engine.ByText:
		sel, by = browser.TextXPath(loc.Value), chromedp.BySearch
	default:
		css, err := browser.CSSSelector(loc)
		if err != nil {
			return nil, err
		}
		sel, by = css, chromedp.ByQueryAll
	}

	var nodes []*cdp.Node
	err := chromedp.Run(opCtx, chromedp.Nodes(sel, &nodes, by, chromedp.AtLeast(1)))
	if err != nil {
		return nil, classify(ctx, opCtx, err)
	}
	if len(nodes) == 0 {
		return nil, engine.ErrElementNotFound
	}
	return nodes, nil
}

// Query returns the text content of every node matching loc
func (s *Session) Query(ctx context.Context, loc engine.Locator, timeout time.Duration) ([]string, error) {
	opCtx, cancel := s.bounded(ctx, timeout)
	defer cancel()

	nodes, err := s.find(ctx, opCtx, loc)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var text string
		if err := chromedp.Run(opCtx, chromedp.TextContent([]cdp.NodeID{n.NodeID}, &text, chromedp.ByNodeID)); err != nil {
			return nil, classify(ctx, opCtx, err)
		}
		texts = append(texts, strings.TrimSpace(text))
	}

	return texts, nil
}

// ScriptClick clicks the first node matching loc from script
func (s *Session) ScriptClick(ctx context.Context, loc engine.Locator, timeout time.Duration) error {
	opCtx, cancel := s.bounded(ctx, timeout)
	defer cancel()

	nodes, err := s.find(ctx, opCtx, loc)
	if err != nil {
		return err
	}

	err = chromedp.Run(opCtx, chromedp.ActionFunc(func(c context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(nodes[0].NodeID).Do(c)
		if err != nil {
			return err
		}
		_, exc, err := runtime.CallFunctionOn(scriptClick).WithObjectID(obj.ObjectID).Do(c)
		if err != nil {
			return err
		}
		if exc != nil {
			return exc
		}
		return nil
	}))
	if err != nil {
		return fmt.Errorf("script click %s: %w", loc, classify(ctx, opCtx, err))
	}
	return nil
}

// Content returns the outer HTML of the document
func (s *Session) Content(ctx context.Context) (string, error) {
	opCtx, cancel := s.bounded(ctx, s.navTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(opCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read document: %w", classify(ctx, opCtx, err))
	}
	return html, nil
}

// Screenshot captures the viewport as PNG
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	opCtx, cancel := s.bounded(ctx, s.navTimeout)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(opCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", classify(ctx, opCtx, err))
	}
	return buf, nil
}

// Close shuts the browser down
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.tabCtx)
		s.tabCancel()
		s.allocCancel()
		log.Debug().Msg("Browser session closed")
	})
	return s.closeErr
}

// classify maps an expired operation deadline to a probe miss. Caller
// cancellation and browser failures pass through.
func classify(ctx, opCtx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(opCtx.Err(), context.DeadlineExceeded) {
		return engine.ErrElementNotFound
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", engine.ErrBrowserCrash, err)
	}
	return err
}
