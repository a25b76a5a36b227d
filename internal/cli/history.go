// internal/cli/history.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/law-makers/pricetrack/internal/history"
	"github.com/law-makers/pricetrack/internal/ui"
)

var (
	historyLimit  int
	historySource string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded observations",
	Long:  `Prints the most recent observations, oldest first. The record is never modified.`,
	Example: `  # Last 20 observations from the CSV file
  pricetrack history

  # Last 5 from the SQLite mirror
  pricetrack history --limit=5 --source=sqlite --sqlite=history.db`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of observations to show (0 for all)")
	historyCmd.Flags().StringVar(&historySource, "source", "csv", "Record to read: csv or sqlite")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	var reader history.Reader
	switch historySource {
	case "csv":
		reader = a.History
	case "sqlite":
		if a.Mirror == nil {
			return fmt.Errorf("no sqlite mirror configured: set --sqlite or history.sqlite_path")
		}
		reader = a.Mirror
	default:
		return fmt.Errorf("invalid source: %s (must be csv or sqlite)", historySource)
	}

	obs, err := reader.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if a.Config.JSONLog {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(obs)
	}
	return printHistory(cmd.OutOrStdout(), obs)
}

func printHistory(w io.Writer, obs []history.Observation) error {
	if len(obs) == 0 {
		fmt.Fprintln(w, ui.Info("No observations recorded yet"))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tPRICE\tVALUE\tTITLE")
	for _, o := range obs {
		value := ""
		if o.PriceValue.Valid {
			value = o.PriceValue.Decimal.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Timestamp.Format(history.TimestampLayout), o.PriceText, value, o.Title)
	}
	return tw.Flush()
}
