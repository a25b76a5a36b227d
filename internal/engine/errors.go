// internal/engine/errors.go
package engine

import (
	"errors"
)

// Common engine errors
var (
	ErrBrowserNotFound    = errors.New("chrome browser not found")
	ErrBrowserCrash       = errors.New("browser crashed")
	ErrElementNotFound    = errors.New("element not found")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrNetworkError       = errors.New("network error")
	ErrUnsupportedLocator = errors.New("unsupported locator")
	ErrNotSupported       = errors.New("operation not supported by this engine")
	ErrNoDocument         = errors.New("no document loaded")
)
