// internal/cli/probes.go
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/law-makers/pricetrack/internal/price"
)

// probesCmd represents the probes command
var probesCmd = &cobra.Command{
	Use:   "probes",
	Short: "List the price extraction probes in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetAppFromCmd(cmd)
		if a == nil {
			return fmt.Errorf("application not initialized")
		}
		return printProbes(cmd.OutOrStdout(), a.Collector.Probes())
	},
}

func init() {
	rootCmd.AddCommand(probesCmd)
}

func printProbes(w io.Writer, probes []price.Probe) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tKIND\tWAIT\tLOCATOR\tSECONDARY")
	for i, p := range probes {
		secondary := "-"
		if !p.Secondary.IsZero() {
			secondary = p.Secondary.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, p.Name, p.Kind, p.Wait, p.Locator, secondary)
	}
	return tw.Flush()
}
