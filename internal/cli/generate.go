package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/internal/generator"
)

var (
	generateSet    []string
	generateOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate <id>",
	Short: "Run a generator and write its output",
	Long: `Run the generator with the given identifier (as listed by "generators", e.g.
part/burntest.BurnTest). Settings not given with --set keep their defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVar(&generateSet, "set", nil, "Set a generator setting (key=value, repeatable)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write output to a file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	id := args[0]
	gens, err := loadCatalog().Generators()
	if err != nil {
		return fmt.Errorf("discovering generators: %w", err)
	}
	t, ok := gens[id]
	if !ok {
		return fmt.Errorf("unknown generator %q; run '%s generators' to list them", id, rootCmd.Name())
	}

	genArgs, err := parseSettings(generateSet)
	if err != nil {
		return err
	}

	g := t.New()
	known := make(map[string]bool)
	for _, s := range g.Settings() {
		known[s.Name] = true
	}
	for k := range genArgs {
		if !known[k] {
			return fmt.Errorf("generator %s has no setting %q", id, k)
		}
	}

	logger.Debug("running generator", "id", id, "args", genArgs)
	if generateOutput != "" {
		return generateToFile(cmd.Context(), g, genArgs, generateOutput, id)
	}
	if err := g.Generate(cmd.Context(), cmd.OutOrStdout(), genArgs); err != nil {
		return fmt.Errorf("generating %s: %w", id, err)
	}
	return nil
}

// generateToFile writes the generator output to path. The file is removed
// if generation or closing fails.
func generateToFile(ctx context.Context, g generator.Generator, args generator.Args, path, id string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := g.Generate(ctx, f, args); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("generating %s: %w", id, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// parseSettings turns key=value pairs into generator arguments.
func parseSettings(pairs []string) (generator.Args, error) {
	out := make(generator.Args, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid setting %q: want key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
