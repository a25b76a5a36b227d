package config

import (
	"fmt"

	"github.com/rs/zerolog"

	urlutil "github.com/law-makers/pricetrack/internal/utils/url"
)

func validate(c *Config) error {
	if c.ProductURL != "" {
		if err := urlutil.ValidateURL(c.ProductURL); err != nil {
			return fmt.Errorf("product_url: %w", err)
		}
	}
	if c.HomeURL != "" {
		if err := urlutil.ValidateURL(c.HomeURL); err != nil {
			return fmt.Errorf("home_url: %w", err)
		}
	}
	if c.History.Path == "" {
		return fmt.Errorf("history path must not be empty")
	}
	switch c.Browser.Driver {
	case DriverChromedp, DriverRod, DriverStatic:
	default:
		return fmt.Errorf("unknown browser driver %q (want %s, %s or %s)", c.Browser.Driver, DriverChromedp, DriverRod, DriverStatic)
	}
	if c.Browser.WindowWidth <= 0 || c.Browser.WindowHeight <= 0 {
		return fmt.Errorf("window size must be > 0")
	}
	if c.Timeouts.Short <= 0 || c.Timeouts.Long <= 0 || c.Timeouts.Navigation <= 0 {
		return fmt.Errorf("timeouts must be > 0")
	}
	if c.Navigation.MinInterval < 0 {
		return fmt.Errorf("navigation min interval must be >= 0")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}
