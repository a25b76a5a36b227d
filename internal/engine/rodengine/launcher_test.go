package rodengine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/pricetrack/internal/engine/browser"
)

func requireChrome(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if _, err := browser.FindChrome(""); err != nil {
		t.Skip("chrome not available")
	}
}

func TestLauncher_Name(t *testing.T) {
	assert.Equal(t, "rod", NewLauncher(browser.DefaultOptions()).Name())
}

func TestLaunch_SessionOutlivesLaunchContext(t *testing.T) {
	requireChrome(t)

	ctx, cancel := context.WithCancel(context.Background())
	session, err := NewLauncher(browser.Options{Headless: true, NavigationTimeout: 10 * time.Second}).Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	// An interrupted run still needs the page for diagnostics.
	cancel()

	html, err := session.Content(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, "<html")
}

func TestLaunch_CancelledBeforeStart(t *testing.T) {
	requireChrome(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLauncher(browser.Options{Headless: true}).Launch(ctx)
	assert.Error(t, err)
}
