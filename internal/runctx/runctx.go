package runctx

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const runKey key = 0

// Run identifies one tracking run.
type Run struct {
	ID        string
	URL       string
	StartTime time.Time
}

// WithRun attaches a fresh run to ctx.
func WithRun(ctx context.Context, productURL string) context.Context {
	return context.WithValue(ctx, runKey, &Run{
		ID:        uuid.NewString(),
		URL:       productURL,
		StartTime: time.Now(),
	})
}

// FromContext returns the run attached to ctx, or a placeholder.
func FromContext(ctx context.Context) *Run {
	if r, ok := ctx.Value(runKey).(*Run); ok {
		return r
	}
	return &Run{
		ID:        "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the global logger tagged with the run id.
func Logger(ctx context.Context) zerolog.Logger {
	r := FromContext(ctx)
	return log.With().Str("run_id", r.ID).Logger()
}

// Elapsed returns the time since the run started
func Elapsed(ctx context.Context) time.Duration {
	return time.Since(FromContext(ctx).StartTime)
}
