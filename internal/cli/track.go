// internal/cli/track.go
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/pricetrack/internal/history"
	"github.com/law-makers/pricetrack/internal/tracker"
	"github.com/law-makers/pricetrack/internal/ui"
)

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:   "track [url]",
	Short: "Record the current price of a product",
	Long: `Visits the storefront home page, dismisses the "Continue shopping" interstitial
if present, loads the product page and records its title and price.

The product URL is taken from the argument, or from product_url in the config
file or PRICETRACK_PRODUCT_URL.`,
	Example: `  # Track one product
  pricetrack track https://www.amazon.com/dp/B0CGY3VF3K

  # Use rod instead of chromedp and mirror into SQLite
  pricetrack track https://www.amazon.com/dp/B0CGY3VF3K --driver=rod --sqlite=history.db

  # Print the observation as JSON
  pricetrack track https://www.amazon.com/dp/B0CGY3VF3K --json`,
	Args:        cobra.MaximumNArgs(1),
	RunE:        runTrack,
	Annotations: map[string]string{showProbesAnnotation: ""},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	productURL := a.Config.ProductURL
	if len(args) == 1 {
		productURL = args[0]
	}
	if productURL == "" {
		return fmt.Errorf("no product URL: pass it as an argument or set product_url")
	}

	obs, err := a.Tracker.Run(cmd.Context(), productURL)
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return errReported
	}

	log.Debug().Str("history", a.History.Path()).Msg("Observation appended")
	return printObservation(cmd.OutOrStdout(), obs, a.Config.JSONLog)
}

func printObservation(w io.Writer, obs *history.Observation, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(obs)
	}

	value := "n/a"
	if obs.PriceValue.Valid {
		value = obs.PriceValue.Decimal.StringFixed(2)
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Product:  %s\n", ui.Bold(obs.Title))
	fmt.Fprintf(w, "Price:    %s\n", ui.Success(obs.PriceText))
	fmt.Fprintf(w, "Value:    %s\n", value)
	fmt.Fprintf(w, "Recorded: %s\n", obs.Timestamp.Format(history.TimestampLayout))
	fmt.Fprintf(w, "\n")
	return nil
}

func reportFailure(w io.Writer, err error) {
	fmt.Fprintln(w, ui.Error(fmt.Sprintf("✗ %s", err)))

	var te *tracker.Error
	if !errors.As(err, &te) || te.Diagnostics == nil {
		return
	}

	written := te.Diagnostics.Written()
	if len(written) == 0 {
		fmt.Fprintln(w, ui.Info("Diagnostics could not be saved"))
		return
	}
	fmt.Fprintln(w, ui.Info("Diagnostics saved to "+strings.Join(written, " and ")))
}
