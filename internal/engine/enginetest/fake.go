// Package enginetest provides an in-memory engine.Page for tests.
package enginetest

import (
	"context"
	"sync"
	"time"

	"github.com/law-makers/pricetrack/internal/engine"
)

// FakePage serves canned query results keyed by locator.
type FakePage struct {
	mu sync.Mutex

	// Elements maps a locator to the texts of its matches.
	Elements map[engine.Locator][]string

	// AfterClick is merged into Elements when ScriptClick hits its locator.
	AfterClick map[engine.Locator]map[engine.Locator][]string

	HTML       string
	PNG        []byte
	NavigateFn func(url string) error
	QueryErr   error

	Navigations []string
	Queries     []engine.Locator
	Clicks      []engine.Locator
	Closed      int
}

// NewFakePage returns a page with the given markup and matches.
func NewFakePage(html string, elements map[engine.Locator][]string) *FakePage {
	if elements == nil {
		elements = make(map[engine.Locator][]string)
	}
	return &FakePage{
		HTML:     html,
		Elements: elements,
		PNG:      []byte("\x89PNG\r\n\x1a\n"),
	}
}

func (p *FakePage) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	p.Navigations = append(p.Navigations, url)
	fn := p.NavigateFn
	p.mu.Unlock()

	if fn != nil {
		return fn(url)
	}
	return nil
}

func (p *FakePage) Query(ctx context.Context, loc engine.Locator, timeout time.Duration) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Queries = append(p.Queries, loc)
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}

	texts, ok := p.Elements[loc]
	if !ok || len(texts) == 0 {
		return nil, engine.ErrElementNotFound
	}

	out := make([]string, len(texts))
	copy(out, texts)
	return out, nil
}

func (p *FakePage) Content(ctx context.Context) (string, error) {
	return p.HTML, nil
}

func (p *FakePage) Screenshot(ctx context.Context) ([]byte, error) {
	if p.PNG == nil {
		return nil, engine.ErrNotSupported
	}
	return p.PNG, nil
}

func (p *FakePage) ScriptClick(ctx context.Context, loc engine.Locator, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Clicks = append(p.Clicks, loc)
	if _, ok := p.Elements[loc]; !ok {
		return engine.ErrElementNotFound
	}

	for k, v := range p.AfterClick[loc] {
		p.Elements[k] = v
	}
	return nil
}

func (p *FakePage) Close() error {
	p.mu.Lock()
	p.Closed++
	p.mu.Unlock()
	return nil
}

// Queried reports how many times loc was queried.
func (p *FakePage) Queried(loc engine.Locator) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, q := range p.Queries {
		if q == loc {
			n++
		}
	}
	return n
}

// Launcher hands out a fixed session.
type Launcher struct {
	Session  engine.Session
	Err      error
	Launches int
}

func (l *Launcher) Launch(ctx context.Context) (engine.Session, error) {
	l.Launches++
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Session, nil
}

func (l *Launcher) Name() string { return "fake" }
