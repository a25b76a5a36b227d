// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter paces page navigations.
//
// Implementations key their budget on the host of the target URL so that
// consecutive loads against the same store are spread out.
type RateLimiter interface {
	// Wait blocks until a navigation to urlStr can proceed.
	// If the context is cancelled first, an error is returned.
	Wait(ctx context.Context, urlStr string) error
}

// HostPacer enforces a minimum interval between navigations to the same host.
// A zero interval disables pacing.
type HostPacer struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	every    rate.Limit
	enabled  bool
}

// NewHostPacer creates a pacer allowing one navigation per host every interval
func NewHostPacer(interval time.Duration) *HostPacer {
	p := &HostPacer{
		limiters: make(map[string]*rate.Limiter),
	}
	if interval > 0 {
		p.every = rate.Every(interval)
		p.enabled = true
	}
	return p
}

// Wait blocks until the navigation to urlStr respects the host interval
func (p *HostPacer) Wait(ctx context.Context, urlStr string) error {
	if !p.enabled {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	host := extractHost(urlStr)
	if host == "" {
		// Invalid URL, let it proceed (navigation reports it)
		return nil
	}

	return p.getLimiter(host).Wait(ctx)
}

// getLimiter returns or creates the limiter for host
func (p *HostPacer) getLimiter(host string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[host]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := p.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(p.every, 1)
	p.limiters[host] = limiter

	return limiter
}

// extractHost extracts the host from a URL string
func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
