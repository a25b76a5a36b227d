// internal/cli/inspect.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/law-makers/pricetrack/internal/engine/static"
	"github.com/law-makers/pricetrack/internal/runctx"
	"github.com/law-makers/pricetrack/internal/tracker"
	"github.com/law-makers/pricetrack/internal/ui"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <html-file>",
	Short: "Extract title and price from a saved page",
	Long: `Runs the extraction pipeline against a saved HTML file without starting a
browser or touching the history file. Useful for replaying a page_source.html
captured after a failed run.`,
	Example: `  # Replay the last failure
  pricetrack inspect page_source.html

  # Show every candidate as JSON
  pricetrack inspect page_source.html --json`,
	Args:        cobra.ExactArgs(1),
	RunE:        runInspect,
	Annotations: map[string]string{showProbesAnnotation: ""},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

type inspectOutput struct {
	File       string           `json:"file"`
	Title      string           `json:"title"`
	Price      string           `json:"price"`
	Value      string           `json:"value,omitempty"`
	Probe      string           `json:"probe"`
	Candidates []candidateOutput `json:"candidates"`
}

type candidateOutput struct {
	Text  string `json:"text"`
	Value string `json:"value,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	page, err := static.LoadFile(args[0])
	if err != nil {
		return err
	}

	ctx := runctx.WithRun(cmd.Context(), "file://"+args[0])
	res, err := a.Tracker.Inspect(ctx, page)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(fmt.Sprintf("✗ %s (code %s)", err, tracker.CodeOf(err))))
		return errReported
	}

	out := inspectOutput{
		File:  args[0],
		Title: res.Title,
		Price: res.Candidate.Text,
		Value: res.Candidate.ValueString(),
		Probe: res.Collection.Probe,
	}
	for _, c := range res.Collection.Candidates {
		out.Candidates = append(out.Candidates, candidateOutput{Text: c.Text, Value: c.ValueString()})
	}

	return printInspect(cmd.OutOrStdout(), out, a.Config.JSONLog)
}

func printInspect(w io.Writer, out inspectOutput, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Product:    %s\n", ui.Bold(out.Title))
	fmt.Fprintf(w, "Price:      %s\n", ui.Success(out.Price))
	fmt.Fprintf(w, "Probe:      %s\n", out.Probe)
	fmt.Fprintf(w, "Candidates: %d\n", len(out.Candidates))
	for _, c := range out.Candidates {
		fmt.Fprintf(w, "  %s %s\n", ui.Dim(fmt.Sprintf("%-12s", c.Text)), c.Value)
	}
	fmt.Fprintf(w, "\n")
	return nil
}
