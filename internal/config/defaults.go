package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "error"
	DefaultJSONLog           = false
	DefaultUserAgent         = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	DefaultDriver            = "chromedp"
	DefaultBrowserHeadless   = true
	DefaultWindowWidth       = 1920
	DefaultWindowHeight      = 1080
	DefaultShortWait         = 5 * time.Second
	DefaultLongWait          = 10 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
	DefaultMinNavInterval    = time.Duration(0)
	DefaultHistoryPath       = "price_history.csv"
	DefaultDiagnosticsDir    = "."
	DefaultConfigName        = "pricetrack"
	EnvPrefix                = "PRICETRACK"
)

// Supported browser drivers
const (
	DriverChromedp = "chromedp"
	DriverRod      = "rod"
	DriverStatic   = "static"
)
