package price

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/runctx"
)

// ErrPriceNotFound is returned when every probe misses.
var ErrPriceNotFound = errors.New("price not found")

// Collector runs the probe table against a rendered page.
type Collector struct {
	probes []Probe
	short  time.Duration
	long   time.Duration
}

// NewCollector creates a collector. A nil probe list selects DefaultProbes.
func NewCollector(probes []Probe, short, long time.Duration) *Collector {
	if probes == nil {
		probes = DefaultProbes
	}
	return &Collector{probes: probes, short: short, long: long}
}

// Probes returns the probe table in evaluation order
func (c *Collector) Probes() []Probe {
	return c.probes
}

func (c *Collector) wait(t WaitTier) time.Duration {
	if t == WaitLong {
		return c.long
	}
	return c.short
}

// Collect walks the probes in order. A narrow hit returns an authoritative
// single-candidate collection; any other probe returns all its valid
// candidates. Probe misses advance to the next probe. Provider failures
// other than a miss abort the walk.
func (c *Collector) Collect(ctx context.Context, page engine.Page) (Collection, error) {
	logger := runctx.Logger(ctx)

	for _, p := range c.probes {
		if err := ctx.Err(); err != nil {
			return Collection{}, err
		}

		texts, err := c.run(ctx, page, p)
		if errors.Is(err, engine.ErrElementNotFound) {
			logger.Debug().
				Str("probe", p.Name).
				Str("kind", p.Kind.String()).
				Str("selector", p.Locator.String()).
				Msg("Probe missed")
			continue
		}
		if err != nil {
			return Collection{}, fmt.Errorf("probe %s: %w", p.Name, err)
		}

		var candidates []Candidate
		for _, t := range texts {
			if !LooksLikePrice(t) {
				continue
			}
			candidates = append(candidates, NewCandidate(t))
			if p.Kind == KindNarrow {
				break
			}
		}

		if len(candidates) == 0 {
			logger.Debug().
				Str("probe", p.Name).
				Int("matches", len(texts)).
				Msg("Probe matched no currency-shaped text")
			continue
		}

		logger.Debug().
			Str("probe", p.Name).
			Str("kind", p.Kind.String()).
			Int("candidates", len(candidates)).
			Msg("Probe produced candidates")

		if n := distinctValues(candidates); n > 2 {
			logger.Warn().
				Str("probe", p.Name).
				Int("distinct", n).
				Msg("More than two distinct prices; keeping the minimum")
		}

		return Collection{
			Candidates:    candidates,
			Authoritative: p.Kind == KindNarrow,
			Probe:         p.Name,
		}, nil
	}

	return Collection{}, ErrPriceNotFound
}

// run executes one probe and returns the texts it produced.
func (c *Collector) run(ctx context.Context, page engine.Page, p Probe) ([]string, error) {
	wait := c.wait(p.Wait)

	switch p.Kind {
	case KindNarrow, KindBroad:
		return page.Query(ctx, p.Locator, wait)

	case KindSplit:
		return c.runSplit(ctx, page, p, wait)

	case KindInteractive:
		if err := page.ScriptClick(ctx, p.Locator, wait); err != nil {
			return nil, err
		}
		return page.Query(ctx, p.Secondary, wait)

	default:
		return nil, fmt.Errorf("unknown probe kind %d", p.Kind)
	}
}

// runSplit composes symbol + whole + "." + fraction from separate elements.
func (c *Collector) runSplit(ctx context.Context, page engine.Page, p Probe, wait time.Duration) ([]string, error) {
	wholes, err := page.Query(ctx, p.Locator, wait)
	if err != nil {
		return nil, err
	}

	whole := ""
	for _, w := range wholes {
		w = strings.TrimRight(strings.TrimSpace(w), ".")
		if w != "" {
			whole = w
			break
		}
	}
	if whole == "" {
		return nil, nil
	}

	fraction, err := firstText(ctx, page, p.Secondary, wait)
	if err != nil {
		return nil, err
	}

	symbol, err := firstText(ctx, page, p.Symbol, wait)
	if err != nil {
		return nil, err
	}
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}

	text := symbol + whole
	if fraction != "" {
		text += "." + fraction
	}
	return []string{text}, nil
}

// firstText returns the first non-empty match of loc, treating a miss as "".
func firstText(ctx context.Context, page engine.Page, loc engine.Locator, wait time.Duration) (string, error) {
	if loc.IsZero() {
		return "", nil
	}

	texts, err := page.Query(ctx, loc, wait)
	if errors.Is(err, engine.ErrElementNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			return t, nil
		}
	}
	return "", nil
}

func distinctValues(candidates []Candidate) int {
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c.Positive() {
			seen[c.Value.Decimal.String()] = struct{}{}
		}
	}
	return len(seen)
}
