package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func TestHostPacer_Disabled(t *testing.T) {
	p := NewHostPacer(0)

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Wait(shortCtx(t), "https://shop.example/dp/1"))
	}
}

func TestHostPacer_PerHost(t *testing.T) {
	p := NewHostPacer(time.Hour)

	require.NoError(t, p.Wait(shortCtx(t), "https://shop.example/"))
	assert.Error(t, p.Wait(shortCtx(t), "https://shop.example/dp/1"))

	// A different host has its own budget
	assert.NoError(t, p.Wait(shortCtx(t), "https://other.example/"))
}

func TestHostPacer_Spacing(t *testing.T) {
	p := NewHostPacer(50 * time.Millisecond)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background(), "https://shop.example/"))
	require.NoError(t, p.Wait(context.Background(), "https://shop.example/dp/1"))

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestHostPacer_InvalidURL(t *testing.T) {
	p := NewHostPacer(time.Hour)
	assert.NoError(t, p.Wait(shortCtx(t), "://bad"))
	assert.NoError(t, p.Wait(shortCtx(t), "://bad"))
}
