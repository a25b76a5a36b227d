package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/pricetrack/internal/config"
	"github.com/law-makers/pricetrack/internal/history"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LogLevel:    "error",
		History:     config.HistoryConfig{Path: filepath.Join(dir, "price_history.csv")},
		Diagnostics: config.DiagnosticsConfig{Dir: dir},
		Browser: config.BrowserConfig{
			Driver:       driver,
			Headless:     true,
			UserAgent:    config.DefaultUserAgent,
			WindowWidth:  config.DefaultWindowWidth,
			WindowHeight: config.DefaultWindowHeight,
		},
		Timeouts: config.TimeoutConfig{
			Short:      time.Second,
			Long:       2 * time.Second,
			Navigation: 5 * time.Second,
		},
	}
}

func TestNew_SelectsDriver(t *testing.T) {
	for _, driver := range []string{config.DriverChromedp, config.DriverRod, config.DriverStatic} {
		t.Run(driver, func(t *testing.T) {
			a, err := New(context.Background(), testConfig(t, driver))
			require.NoError(t, err)
			defer a.Close(context.Background())

			assert.Equal(t, driver, a.Launcher.Name())
			assert.NotNil(t, a.Tracker)
			assert.IsType(t, &history.CSVStore{}, a.Store)
		})
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), testConfig(t, "selenium"))
	assert.Error(t, err)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)
}

func TestNew_SQLiteMirror(t *testing.T) {
	cfg := testConfig(t, config.DriverStatic)
	cfg.History.SQLitePath = filepath.Join(t.TempDir(), "history.db")

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	assert.IsType(t, &history.MirroredStore{}, a.Store)
	assert.FileExists(t, cfg.History.SQLitePath)
	assert.NoError(t, a.Close(context.Background()))
}

func TestNew_BadProxy(t *testing.T) {
	cfg := testConfig(t, config.DriverStatic)
	cfg.Browser.Proxy = "://nope"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
