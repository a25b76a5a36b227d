package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FlagGroupAnnotation tags a persistent flag with its help section
const FlagGroupAnnotation = "pricetrack_group"

// Help sections in display order
var FlagGroups = []string{"Output", "Run", "Browser", "Timing"}

// flagKeys maps persistent flag names to configuration keys
var flagKeys = map[string]string{
	"json":            "json",
	"home-url":        "home_url",
	"history":         "history.path",
	"sqlite":          "history.sqlite_path",
	"diagnostics-dir": "diagnostics.dir",
	"driver":          "browser.driver",
	"headless":        "browser.headless",
	"chrome-path":     "browser.chrome_path",
	"user-agent":      "browser.user_agent",
	"proxy":           "browser.proxy",
	"short-wait":      "timeouts.short",
	"long-wait":       "timeouts.long",
	"timeout":         "timeouts.navigation",
	"min-interval":    "navigation.min_interval",
}

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.BoolP("quiet", "q", false, "Suppress all output except errors")
	pf.Bool("json", false, "Output in JSON format only")
	pf.String("config", "", "Path to configuration file (optional)")

	pf.String("home-url", "", "Storefront page visited before the product (default: product URL origin)")
	pf.String("history", DefaultHistoryPath, "CSV file observations are appended to")
	pf.String("sqlite", "", "Also mirror observations into this SQLite database")
	pf.String("diagnostics-dir", DefaultDiagnosticsDir, "Directory for page_source.html and screenshot.png on failure")

	pf.String("driver", DefaultDriver, "Page driver: chromedp, rod or static")
	pf.Bool("headless", DefaultBrowserHeadless, "Run the browser without a window")
	pf.String("chrome-path", "", "Path to the Chrome/Chromium executable")
	pf.String("user-agent", "", "Custom user agent string")
	pf.String("proxy", "", "Set HTTP/SOCKS5 proxy (e.g., http://localhost:8080)")

	pf.Duration("short-wait", DefaultShortWait, "Bound for quick probes (interstitial, narrow price IDs)")
	pf.Duration("long-wait", DefaultLongWait, "Bound for page body, title and broad price probes")
	pf.Duration("timeout", DefaultNavigationTimeout, "Bound for each page load")
	pf.Duration("min-interval", DefaultMinNavInterval, "Minimum delay between loads on the same host (0 disables)")

	group(pf, "Output", "verbose", "quiet", "json", "config")
	group(pf, "Run", "home-url", "history", "sqlite", "diagnostics-dir")
	group(pf, "Browser", "driver", "headless", "chrome-path", "user-agent", "proxy")
	group(pf, "Timing", "short-wait", "long-wait", "timeout", "min-interval")
}

func group(fs *pflag.FlagSet, name string, flags ...string) {
	for _, f := range flags {
		_ = fs.SetAnnotation(f, FlagGroupAnnotation, []string{name})
	}
}
