// Package browser holds the launch settings shared by the browser-backed engines.
package browser

import (
	"time"
)

// Options configures a browser launch.
type Options struct {
	Headless     bool
	ChromePath   string
	UserAgent    string
	Proxy        string
	WindowWidth  int
	WindowHeight int

	// NavigationTimeout bounds page loads and whole-document reads.
	NavigationTimeout time.Duration
}

// DefaultOptions returns a headless 1920x1080 configuration.
func DefaultOptions() Options {
	return Options{
		Headless:          true,
		WindowWidth:       1920,
		WindowHeight:      1080,
		NavigationTimeout: 30 * time.Second,
	}
}
