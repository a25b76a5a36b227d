package price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/pricetrack/internal/engine"
	"github.com/law-makers/pricetrack/internal/engine/enginetest"
)

var (
	broadLoc = engine.CSS("span.a-price span.a-offscreen")
	wholeLoc = engine.CSS("span.a-price-whole")
	fracLoc  = engine.CSS("span.a-price-fraction")
	symLoc   = engine.CSS("span.a-price-symbol")
)

func newTestCollector() *Collector {
	return NewCollector(nil, 10*time.Millisecond, 20*time.Millisecond)
}

func TestCollect_NarrowShortCircuits(t *testing.T) {
	page := enginetest.NewFakePage("", map[engine.Locator][]string{
		engine.ID("priceblock_dealprice"): {"$15.00"},
		broadLoc:                          {"$9.00"},
	})

	got, err := newTestCollector().Collect(context.Background(), page)
	require.NoError(t, err)

	assert.True(t, got.Authoritative)
	assert.Equal(t, "deal-price", got.Probe)
	require.Len(t, got.Candidates, 1)
	assert.Equal(t, "$15.00", got.Candidates[0].Text)
	assert.Equal(t, 0, page.Queried(broadLoc))
}

func TestCollect_NarrowSkipsNonPriceText(t *testing.T) {
	page := enginetest.NewFakePage("", map[engine.Locator][]string{
		engine.ID("priceblock_ourprice"): {"Currently unavailable."},
		broadLoc:                         {"$9.00"},
	})

	got, err := newTestCollector().Collect(context.Background(), page)
	require.NoError(t, err)
	assert.False(t, got.Authoritative)
	assert.Equal(t, "offscreen", got.Probe)
}

func TestCollect_BroadCollectsAll(t *testing.T) {
	page := enginetest.NewFakePage("", map[engine.Locator][]string{
		broadLoc: {"$24.99", "", "$19.99", "List:"},
	})

	got, err := newTestCollector().Collect(context.Background(), page)
	require.NoError(t, err)

	require.Len(t, got.Candidates, 2)
	best, ok := Select(got)
	require.True(t, ok)
	assert.Equal(t, "$19.99", best.Text)
	assert.Equal(t, "19.99", best.ValueString())
}

func TestCollect_Split(t *testing.T) {
	tests := []struct {
		name     string
		elements map[engine.Locator][]string
		want     string
	}{
		{
			name:     "whole and fraction",
			elements: map[engine.Locator][]string{wholeLoc: {"1,299."}, fracLoc: {"99"}, symLoc: {"$"}},
			want:     "$1,299.99",
		},
		{
			name:     "default symbol",
			elements: map[engine.Locator][]string{wholeLoc: {"42."}, fracLoc: {"50"}},
			want:     "$42.50",
		},
		{
			name:     "no fraction",
			elements: map[engine.Locator][]string{wholeLoc: {"7"}, symLoc: {"€"}},
			want:     "€7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := enginetest.NewFakePage("", tt.elements)

			got, err := newTestCollector().Collect(context.Background(), page)
			require.NoError(t, err)
			require.Len(t, got.Candidates, 1)
			assert.Equal(t, "split-price", got.Probe)
			assert.Equal(t, tt.want, got.Candidates[0].Text)
		})
	}
}

func TestCollect_Interactive(t *testing.T) {
	probe := DefaultProbes[len(DefaultProbes)-1]
	require.Equal(t, KindInteractive, probe.Kind)

	page := enginetest.NewFakePage("", map[engine.Locator][]string{
		probe.Locator: {"See All Buying Options"},
	})
	page.AfterClick = map[engine.Locator]map[engine.Locator][]string{
		probe.Locator: {probe.Secondary: {"$31.00", "$28.50"}},
	}

	got, err := newTestCollector().Collect(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, page.Clicks, 1)

	best, ok := Select(got)
	require.True(t, ok)
	assert.Equal(t, "$28.50", best.Text)
}

func TestCollect_Exhausted(t *testing.T) {
	page := enginetest.NewFakePage("", nil)

	_, err := newTestCollector().Collect(context.Background(), page)
	assert.ErrorIs(t, err, ErrPriceNotFound)

	// Every probe was attempted once
	for _, p := range DefaultProbes {
		if p.Kind == KindInteractive {
			continue
		}
		assert.Equal(t, 1, page.Queried(p.Locator), p.Name)
	}
}

func TestCollect_ProviderErrorAborts(t *testing.T) {
	page := enginetest.NewFakePage("", nil)
	page.QueryErr = engine.ErrBrowserCrash

	_, err := newTestCollector().Collect(context.Background(), page)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrBrowserCrash))
	assert.False(t, errors.Is(err, ErrPriceNotFound))
	assert.Len(t, page.Queries, 1)
}

func TestCollect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestCollector().Collect(ctx, enginetest.NewFakePage("", nil))
	assert.ErrorIs(t, err, context.Canceled)
}
