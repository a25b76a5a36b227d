package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds application configuration values
type Config struct {
	ProductURL string `mapstructure:"product_url"`
	HomeURL    string `mapstructure:"home_url"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	JSONLog  bool   `mapstructure:"json"`

	History     HistoryConfig     `mapstructure:"history"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	Browser     BrowserConfig     `mapstructure:"browser"`
	Timeouts    TimeoutConfig     `mapstructure:"timeouts"`
	Navigation  NavigationConfig  `mapstructure:"navigation"`
	Detect      DetectConfig      `mapstructure:"detect"`
}

// HistoryConfig locates the observation record.
type HistoryConfig struct {
	Path string `mapstructure:"path"`

	// SQLitePath enables the SQLite mirror when set.
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DiagnosticsConfig locates failure artefacts.
type DiagnosticsConfig struct {
	Dir string `mapstructure:"dir"`
}

// BrowserConfig configures the rendered-DOM provider.
type BrowserConfig struct {
	Driver       string `mapstructure:"driver"`
	Headless     bool   `mapstructure:"headless"`
	ChromePath   string `mapstructure:"chrome_path"`
	UserAgent    string `mapstructure:"user_agent"`
	Proxy        string `mapstructure:"proxy"`
	WindowWidth  int    `mapstructure:"window_width"`
	WindowHeight int    `mapstructure:"window_height"`
}

// TimeoutConfig holds the wait tiers.
type TimeoutConfig struct {
	Short      time.Duration `mapstructure:"short"`
	Long       time.Duration `mapstructure:"long"`
	Navigation time.Duration `mapstructure:"navigation"`
}

// NavigationConfig paces page loads.
type NavigationConfig struct {
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// DetectConfig extends the robot-check phrase list.
type DetectConfig struct {
	ExtraMarkers []string `mapstructure:"extra_markers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("product_url", "")
	v.SetDefault("home_url", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("json", DefaultJSONLog)
	v.SetDefault("history.path", DefaultHistoryPath)
	v.SetDefault("history.sqlite_path", "")
	v.SetDefault("diagnostics.dir", DefaultDiagnosticsDir)
	v.SetDefault("browser.driver", DefaultDriver)
	v.SetDefault("browser.headless", DefaultBrowserHeadless)
	v.SetDefault("browser.chrome_path", "")
	v.SetDefault("browser.user_agent", DefaultUserAgent)
	v.SetDefault("browser.proxy", "")
	v.SetDefault("browser.window_width", DefaultWindowWidth)
	v.SetDefault("browser.window_height", DefaultWindowHeight)
	v.SetDefault("timeouts.short", DefaultShortWait)
	v.SetDefault("timeouts.long", DefaultLongWait)
	v.SetDefault("timeouts.navigation", DefaultNavigationTimeout)
	v.SetDefault("navigation.min_interval", DefaultMinNavInterval)
	v.SetDefault("detect.extra_markers", []string{})
}

// Load builds a Config by combining defaults, an optional config file, environment variables, and CLI flags.
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := ""
	if cmd != nil {
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := cmd.Flags().Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cmd != nil {
		if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		} else if f := cmd.Flags().Lookup("quiet"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
