package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/internal/branding"
	"github.com/boxes-labs/boxes/internal/manifest"
	"github.com/boxes-labs/boxes/internal/scaffold"
)

var (
	newName      string
	newGenerator string
	newGroup     string
	newRuntime   string
)

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Scaffold a new generator module",
	Long: `Create a generator module skeleton in <dir>, which must be empty or absent.

The exec runtime (default) writes a manifest and a generate.sh entry point.
The builtin runtime writes a manifest and a Go file for modules compiled into
the binary.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", "Module name (defaults to the directory name)")
	newCmd.Flags().StringVar(&newGenerator, "generator", "", "Generator type name (defaults to the module name in CamelCase)")
	newCmd.Flags().StringVar(&newGroup, "group", "Misc", "UI group the generator joins")
	newCmd.Flags().StringVar(&newRuntime, "runtime", manifest.RuntimeExec, "Module runtime (exec or builtin)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	dir := args[0]
	name := newName
	if name == "" {
		name = filepath.Base(filepath.Clean(dir))
	}

	data := scaffold.NewScaffoldData(name, newGenerator, newGroup, newRuntime)
	result, err := scaffold.Generate(data, dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s module %s in %s\n", data.Runtime, TitleStyle.Render(data.Name), result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", WarningStyle.Render("warning"), w)
	}
	if data.Runtime == manifest.RuntimeExec {
		fmt.Fprintf(out, "\nAdd %s to %s to make it discoverable.\n",
			filepath.Dir(filepath.Clean(result.OutputDir)), branding.EnvVar("GENERATOR_PATH"))
	}
	return nil
}
