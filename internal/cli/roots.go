package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/internal/branding"
	"github.com/boxes-labs/boxes/internal/config"
	"github.com/boxes-labs/boxes/internal/roots"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "Show the directories searched for generator modules",
	Long: fmt.Sprintf(`Show the generator roots in search order. Extra roots come from %s
(a list separated by %q) or the %q config key.`,
		branding.EnvVar("GENERATOR_PATH"), string(filepath.ListSeparator), config.KeyGeneratorPath),
	Args: cobra.NoArgs,
	RunE: runRoots,
}

func init() {
	rootCmd.AddCommand(rootsCmd)
}

func runRoots(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH\tSTATUS")
	for _, r := range rootsFunc() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Path, rootStatus(r))
	}
	return w.Flush()
}

func rootStatus(r roots.Root) string {
	_, err := r.Open()
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, roots.ErrPathNotFound):
		return "missing"
	default:
		return "error: " + err.Error()
	}
}
