// internal/engine/static/page.go
package static

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/law-makers/pricetrack/internal/engine"
	urlutil "github.com/law-makers/pricetrack/internal/utils/url"
)

// Page implements engine.Page over server-rendered HTML parsed with goquery.
// It runs no scripts: waits return immediately and screenshots are unsupported.
type Page struct {
	client    *http.Client
	userAgent string

	mu  sync.RWMutex
	doc *goquery.Document
	raw string
	url string
}

// New creates an empty page that fetches documents with client
func New(client *http.Client, userAgent string) *Page {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Page{client: client, userAgent: userAgent}
}

// LoadFile parses a saved HTML document, e.g. a diagnostics page_source.html
func LoadFile(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p := New(nil, "")
	if err := p.Load(f, ""); err != nil {
		return nil, err
	}
	return p, nil
}

// Load replaces the current document with the HTML read from r
func (p *Page) Load(r io.Reader, baseURL string) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read HTML: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	p.mu.Lock()
	p.doc, p.raw, p.url = doc, string(raw), baseURL
	p.mu.Unlock()
	return nil
}

// URL returns the location of the current document
func (p *Page) URL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.url
}

// Navigate fetches url and parses the response
func (p *Page) Navigate(ctx context.Context, url string) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrInvalidURL, err)
	}

	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrNetworkError, err)
	}
	defer resp.Body.Close()

	// Robot-check pages arrive with error statuses; the body is kept for inspection.
	if err := p.Load(resp.Body, resp.Request.URL.String()); err != nil {
		return err
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed_ms", time.Since(start)).
		Msg("Fetch completed")

	if resp.StatusCode >= 400 {
		log.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("Page served with error status")
	}
	return nil
}

func (p *Page) document() (*goquery.Document, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.doc == nil {
		return nil, engine.ErrNoDocument
	}
	return p.doc, nil
}

// find returns the selection matching loc
func (p *Page) find(loc engine.Locator) (*goquery.Selection, error) {
	doc, err := p.document()
	if err != nil {
		return nil, err
	}

	switch loc.Kind {
	case engine.ByID:
		return doc.Find(fmt.Sprintf("[id=%q]", loc.Value)), nil
	case engine.ByCSS:
		return doc.Find(loc.Value), nil
	case engine.ByText:
		label := strings.TrimSpace(loc.Value)
		return doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return hasOwnText(s.Nodes[0], label)
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", engine.ErrUnsupportedLocator, loc)
	}
}

// Query returns the text of every match. The document is static, so there is nothing to wait for.
func (p *Page) Query(ctx context.Context, loc engine.Locator, timeout time.Duration) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sel, err := p.find(loc)
	if err != nil {
		return nil, err
	}
	if sel.Length() == 0 {
		return nil, engine.ErrElementNotFound
	}

	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts, nil
}

// Content returns the raw markup of the current document
func (p *Page) Content(ctx context.Context) (string, error) {
	if _, err := p.document(); err != nil {
		return "", err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.raw, nil
}

// Screenshot is not available without a renderer
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	return nil, engine.ErrNotSupported
}

// ScriptClick follows the link of the first match. Elements without a link
// have no effect since no scripts run.
func (p *Page) ScriptClick(ctx context.Context, loc engine.Locator, timeout time.Duration) error {
	sel, err := p.find(loc)
	if err != nil {
		return err
	}
	if sel.Length() == 0 {
		return engine.ErrElementNotFound
	}

	target := sel.First()
	href, ok := target.Attr("href")
	if !ok {
		href, ok = target.Closest("a[href]").Attr("href")
	}
	if !ok || href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return nil
	}

	return p.Navigate(ctx, urlutil.ResolveURL(p.URL(), href))
}

// Close releases nothing; present to satisfy engine.Session
func (p *Page) Close() error {
	return nil
}

// hasOwnText reports whether n has a direct text child equal to label
// after whitespace collapsing.
func hasOwnText(n *html.Node, label string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		if strings.Join(strings.Fields(c.Data), " ") == label {
			return true
		}
	}
	return false
}

// Launcher hands out fresh static pages sharing one HTTP client.
type Launcher struct {
	client    *http.Client
	userAgent string
}

// NewLauncher creates a static launcher
func NewLauncher(client *http.Client, userAgent string) *Launcher {
	return &Launcher{client: client, userAgent: userAgent}
}

// Launch returns an empty page
func (l *Launcher) Launch(ctx context.Context) (engine.Session, error) {
	return New(l.client, l.userAgent), nil
}

// Name returns the name of this launcher
func (l *Launcher) Name() string {
	return "static"
}
