package cli

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/internal/registry"
)

var modulesJSON bool

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the generator modules that import cleanly",
	Long: `List the modules found under the configured roots, keyed by name. Modules
that fail to import are skipped and reported on stderr.`,
	Args: cobra.NoArgs,
	RunE: runModules,
}

func init() {
	modulesCmd.Flags().BoolVar(&modulesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(modulesCmd)
}

type moduleEntry struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Version string   `json:"version,omitempty"`
	Runtime string   `json:"runtime,omitempty"`
	Root    string   `json:"root"`
	Tags    []string `json:"tags,omitempty"`
}

func runModules(cmd *cobra.Command, args []string) error {
	res, err := loadCatalog().Scan(registry.BestEffort)
	if err != nil {
		return fmt.Errorf("discovering modules: %w", err)
	}
	reportSkipped(cmd, res)

	byName := res.ByName()
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]moduleEntry, 0, len(names))
	for _, name := range names {
		mod := byName[name]
		e := moduleEntry{Name: name, Path: mod.Path, Root: mod.Root}
		if mod.Manifest != nil {
			e.Version = mod.Manifest.Version
			e.Runtime = mod.Manifest.Runtime
			e.Tags = mod.Manifest.Tags
		}
		entries = append(entries, e)
	}

	if modulesJSON {
		return printJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No modules found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH\tVERSION\tRUNTIME\tROOT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Path, e.Version, e.Runtime, e.Root)
	}
	return w.Flush()
}
