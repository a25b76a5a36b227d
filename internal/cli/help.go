// internal/cli/help.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/law-makers/pricetrack/internal/config"
	"github.com/law-makers/pricetrack/internal/price"
	"github.com/law-makers/pricetrack/internal/ui"
)

// showProbesAnnotation marks commands whose help lists the price probes
const showProbesAnnotation = "show_probes"

// customHelpFunc provides a colorized help output
func customHelpFunc(cmd *cobra.Command, args []string) {
	renderHelp(cmd.OutOrStdout(), cmd)
}

// customUsageFunc prints the short usage after a command line error
func customUsageFunc(cmd *cobra.Command) error {
	w := cmd.ErrOrStderr()
	renderUsage(w, cmd)
	renderFlags(w, cmd)
	fmt.Fprintf(w, "\n%s\n", ui.Dim(fmt.Sprintf("Use \"%s --help\" for more information.", cmd.CommandPath())))
	return nil
}

func renderHelp(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintf(w, "\n%s\n", ui.Heading(strings.ToUpper(cmd.Name())))
	if cmd.Short != "" {
		fmt.Fprintln(w, cmd.Short)
	}
	if cmd.Long != "" && cmd.Long != cmd.Short {
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(cmd.Long))
	}

	renderUsage(w, cmd)

	if cmd.HasExample() {
		fmt.Fprintf(w, "\n%s\n", ui.Section("Examples"))
		for _, line := range strings.Split(cmd.Example, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
				fmt.Fprintln(w)
			case strings.HasPrefix(line, "#"):
				fmt.Fprintf(w, "  %s\n", ui.Dim(line))
			default:
				fmt.Fprintf(w, "  %s\n", ui.Flag("$ "+line))
			}
		}
	}

	if _, ok := cmd.Annotations[showProbesAnnotation]; ok {
		fmt.Fprintf(w, "\n%s\n", ui.Section("Price Probes"))
		for i, p := range price.DefaultProbes {
			fmt.Fprintf(w, "  %d. %-16s %s\n", i+1, p.Name, ui.Dim(fmt.Sprintf("%s, %s wait", p.Kind, p.Wait)))
		}
	}

	renderFlags(w, cmd)

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "\n%s\n", ui.Dim(fmt.Sprintf("Use \"%s <command> --help\" for more information about a command.", cmd.CommandPath())))
	}
	fmt.Fprintln(w)
}

func renderUsage(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintf(w, "\n%s\n", ui.Section("Usage"))
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", ui.Command(cmd.UseLine()))
	}
	if !cmd.HasAvailableSubCommands() {
		return
	}
	fmt.Fprintf(w, "  %s\n", ui.Command(cmd.CommandPath()+" <command> [flags]"))

	fmt.Fprintf(w, "\n%s\n", ui.Section("Commands"))
	width := 0
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() && c.Name() != "help" {
			width = max(width, len(c.Name()))
		}
	}
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() && c.Name() != "help" {
			fmt.Fprintf(w, "  %s  %s\n", ui.Command(fmt.Sprintf("%-*s", width, c.Name())), ui.Dim(c.Short))
		}
	}
}

// flagSections splits the flags visible on cmd into its own flags followed
// by the global groups declared in config.
func flagSections(cmd *cobra.Command) ([]string, map[string]*pflag.FlagSet) {
	sets := map[string]*pflag.FlagSet{}
	add := func(section string, f *pflag.Flag) {
		if f.Hidden {
			return
		}
		if sets[section] == nil {
			sets[section] = pflag.NewFlagSet(section, pflag.ContinueOnError)
		}
		if sets[section].Lookup(f.Name) == nil {
			sets[section].AddFlag(f)
		}
	}

	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) { add("Flags", f) })
	global := func(f *pflag.Flag) {
		if g := f.Annotations[config.FlagGroupAnnotation]; len(g) > 0 {
			add(g[0], f)
			return
		}
		add("Flags", f)
	}
	cmd.PersistentFlags().VisitAll(global)
	cmd.InheritedFlags().VisitAll(global)

	order := append([]string{"Flags"}, config.FlagGroups...)
	var present []string
	for _, name := range order {
		if sets[name] != nil {
			present = append(present, name)
		}
	}
	return present, sets
}

func renderFlags(w io.Writer, cmd *cobra.Command) {
	order, sets := flagSections(cmd)
	for _, name := range order {
		title := name
		if name != "Flags" {
			title = name + " Flags"
		}
		fmt.Fprintf(w, "\n%s\n", ui.Section(title))
		writeFlagUsages(w, sets[name].FlagUsages())
	}
}

// writeFlagUsages colors the name and description columns of pflag usages
func writeFlagUsages(w io.Writer, usages string) {
	type row struct{ name, desc string }
	var rows []row
	width := 0
	for _, line := range strings.Split(strings.TrimRight(usages, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		name, desc, _ := strings.Cut(trimmed, "  ")
		rows = append(rows, row{name: name, desc: strings.TrimSpace(desc)})
		width = max(width, len(name))
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s  %s\n", ui.Flag(fmt.Sprintf("%-*s", width, r.name)), ui.Dim(r.desc))
	}
}
