package cli

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/generators"
	"github.com/boxes-labs/boxes/internal/registry"
	"github.com/boxes-labs/boxes/internal/roots"
	"github.com/boxes-labs/boxes/internal/uigroup"
)

var (
	catalogOnce   sync.Once
	sharedCatalog *registry.Catalog

	// rootsFunc returns the roots searched on every scan.
	rootsFunc = func() []roots.Root { return roots.Default(generators.FS()) }
)

// loadCatalog returns the process-wide catalog, creating it on first use.
func loadCatalog() *registry.Catalog {
	catalogOnce.Do(func() {
		imp := registry.NewImporter(uigroup.NewRegistry(),
			registry.WithVersion(buildVersion),
			registry.WithLogger(logger),
		)
		sharedCatalog = registry.NewCatalog(rootsFunc, imp)
	})
	return sharedCatalog
}

// reportSkipped prints the modules a best-effort scan left out.
func reportSkipped(cmd *cobra.Command, res *registry.ScanResult) {
	for _, s := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", WarningStyle.Render("skipped"), s.Module, s.Err)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func policyFor(bestEffort bool) registry.Policy {
	if bestEffort {
		return registry.BestEffort
	}
	return registry.FailFast
}
