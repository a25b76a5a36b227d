// internal/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/pricetrack/internal/app"
	"github.com/law-makers/pricetrack/internal/config"
	"github.com/law-makers/pricetrack/internal/ui"
)

// errReported marks failures the command already printed.
var errReported = errors.New("failure already reported")

// activeApp is closed by the finalizer after every command.
var activeApp *app.Application

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pricetrack",
	Short: "Record the current price of a product page",
	Long: `Pricetrack opens a product page in a headless browser, extracts the title and the
current price, and appends one observation to a CSV history file.

Robot checks are detected and reported separately from missing prices. On any
failure the page source and a screenshot are saved for inspection.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, ui.Error("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetAppFromCmd(cmd) != nil {
			return nil
		}

		cfg, err := initConfig(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.Navigation)
		defer cancel()
		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}

		activeApp = a
		SetApp(cmd, a)
		return nil
	}

	// Runs after RunE even when it fails
	cobra.OnFinalize(func() {
		if activeApp == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = activeApp.Close(ctx)
		activeApp = nil
	})
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)

	// Customize help and version flag descriptions
	rootCmd.Flags().BoolP("help", "h", false, "Help for Pricetrack")
	rootCmd.Flags().Bool("version", false, "Version for Pricetrack")
}

// initConfig loads configuration for cmd and configures the global logger.
func initConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.JSONLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	log.Debug().
		Str("driver", cfg.Browser.Driver).
		Str("history", cfg.History.Path).
		Msg("Configuration loaded")
	return cfg, nil
}

func init() {
	// Disable the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)
}
