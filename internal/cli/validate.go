package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a module manifest against the schema",
	Long: `Validate a module manifest. The path may name the manifest itself or the module
directory holding it (module.yaml, module.yml, module.json or module.toml).`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	file, err := manifestPath(args[0])
	if err != nil {
		return err
	}

	result, err := manifest.ValidateFile(file)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !result.Valid {
		fmt.Fprintf(out, "%s %s\n", ErrorStyle.Render("invalid"), file)
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  %s\n", issue)
		}
		return fmt.Errorf("%s has %d schema issue(s)", file, len(result.Issues))
	}

	m, err := manifest.LoadFile(file)
	if err != nil {
		return err
	}
	if err := m.CheckRequires(buildVersion); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", WarningStyle.Render("warning"), err)
	}
	fmt.Fprintf(out, "%s %s (%s %s, runtime %s)\n", SuccessStyle.Render("valid"), file, m.Name, m.Version, m.Runtime)
	return nil
}

// manifestPath returns p if it is a file, else the highest-priority
// manifest inside the directory p.
func manifestPath(p string) (string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	if !info.IsDir() {
		return p, nil
	}
	for _, name := range manifest.FileNames {
		candidate := filepath.Join(p, name)
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no module manifest in %s", p)
}
