package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/registry"
	"github.com/boxes-labs/boxes/internal/uigroup"
)

var (
	generatorsGroupFilter string
	generatorsTagFilter   string
	generatorsJSON        bool
)

var generatorsCmd = &cobra.Command{
	Use:   "generators [query]",
	Short: "List the generators found under all roots",
	Long: `List every generator type exported by the modules under the configured roots.

The query matches against identifiers, display names and descriptions
(case-insensitive substring). Use --group to filter by UI group and --tag to
filter by module tags. The first module that fails to import aborts the
listing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerators,
}

func init() {
	generatorsCmd.Flags().StringVar(&generatorsGroupFilter, "group", "", "Filter by UI group (e.g., Tray, Part)")
	generatorsCmd.Flags().StringVar(&generatorsTagFilter, "tag", "", "Filter by module tags (comma-separated, matches any)")
	generatorsCmd.Flags().BoolVar(&generatorsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(generatorsCmd)
}

// generatorEntry represents a cataloged generator type for display.
type generatorEntry struct {
	ID          string              `json:"id"`
	DisplayName string              `json:"display_name"`
	Description string              `json:"description,omitempty"`
	Module      string              `json:"module"`
	Version     string              `json:"version,omitempty"`
	Groups      []string            `json:"groups,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Settings    []generator.Setting `json:"settings,omitempty"`
}

func runGenerators(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	cat := loadCatalog()
	res, err := cat.Scan(registry.FailFast)
	if err != nil {
		return fmt.Errorf("discovering generators: %w", err)
	}

	filterTags := splitList(generatorsTagFilter)
	entries := generatorEntries(res, cat.Groups())
	var matched []generatorEntry
	for _, e := range entries {
		if matchesGenerator(e, query, generatorsGroupFilter, filterTags) {
			matched = append(matched, e)
		}
	}

	if len(matched) == 0 {
		msg := "No generators found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if generatorsGroupFilter != "" {
			msg += fmt.Sprintf(" with --group=%s", generatorsGroupFilter)
		}
		if generatorsTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", generatorsTagFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	if generatorsJSON {
		return printJSON(cmd, matched)
	}
	return printGeneratorsTable(cmd, matched)
}

// generatorEntries lists the generators of every imported module, sorted
// by identifier.
func generatorEntries(res *registry.ScanResult, groups *uigroup.Registry) []generatorEntry {
	membership := groupMembership(groups)

	var entries []generatorEntry
	for _, mod := range res.Modules {
		for id, t := range registry.Extract(mod) {
			e := generatorEntry{
				ID:          id,
				DisplayName: t.DisplayName(),
				Description: t.Description,
				Module:      mod.Path,
				Groups:      membership[t],
				Settings:    t.New().Settings(),
			}
			if mod.Manifest != nil {
				e.Version = mod.Manifest.Version
				e.Tags = mod.Manifest.Tags
			}
			entries = append(entries, e)
		}
	}
	slices.SortFunc(entries, func(a, b generatorEntry) int { return strings.Compare(a.ID, b.ID) })
	return entries
}

// groupMembership maps each generator type to the names of its groups.
func groupMembership(groups *uigroup.Registry) map[*generator.Type][]string {
	out := make(map[*generator.Type][]string)
	for _, g := range groups.Groups() {
		for _, m := range g.Generators() {
			t, ok := m.(*generator.Type)
			if !ok || slices.Contains(out[t], g.Name) {
				continue
			}
			out[t] = append(out[t], g.Name)
		}
	}
	return out
}

// matchesGenerator returns true if the entry matches all provided filters.
// All filters are AND-combined: the entry must match every non-empty filter.
func matchesGenerator(e generatorEntry, query, groupFilter string, filterTags []string) bool {
	// Filter by group (case-insensitive exact match).
	if groupFilter != "" && !slices.ContainsFunc(e.Groups, func(g string) bool {
		return strings.EqualFold(g, groupFilter)
	}) {
		return false
	}

	// Filter by tags (match any).
	if len(filterTags) > 0 && !matchesAnyTag(e.Tags, filterTags) {
		return false
	}

	// Filter by query (substring match on id, display name or description).
	if query != "" {
		q := strings.ToLower(query)
		if !strings.Contains(strings.ToLower(e.ID), q) &&
			!strings.Contains(strings.ToLower(e.DisplayName), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}

	return true
}

// matchesAnyTag returns true if any of the entry's tags match any of the filter tags.
// Comparison is case-insensitive.
func matchesAnyTag(tags []string, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, tag := range tags {
			if strings.EqualFold(tag, ft) {
				return true
			}
		}
	}
	return false
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printGeneratorsTable(cmd *cobra.Command, entries []generatorEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGROUP\tDESCRIPTION")
	for _, e := range entries {
		group := strings.Join(e.Groups, ",")
		if group == "" {
			group = "-"
		}
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.DisplayName, group, desc)
	}
	return w.Flush()
}
