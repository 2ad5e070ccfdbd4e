package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/uigroup"
)

var (
	groupsJSON       bool
	groupsBestEffort bool
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List UI groups and the generators in each",
	Long: `List the UI groups in display order together with the generators that joined
them while their modules were imported.

By default the first module that fails to import aborts the listing. Use
--best-effort to skip such modules and report them on stderr.`,
	Args: cobra.NoArgs,
	RunE: runGroups,
}

func init() {
	groupsCmd.Flags().BoolVar(&groupsJSON, "json", false, "Output in JSON format")
	groupsCmd.Flags().BoolVar(&groupsBestEffort, "best-effort", false, "Skip modules that fail to import")
	rootCmd.AddCommand(groupsCmd)
}

type memberEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type groupEntry struct {
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Image       string        `json:"image,omitempty"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Generators  []memberEntry `json:"generators"`
}

func runGroups(cmd *cobra.Command, args []string) error {
	cat := loadCatalog()
	res, err := cat.Scan(policyFor(groupsBestEffort))
	if err != nil {
		return fmt.Errorf("discovering generators: %w", err)
	}
	reportSkipped(cmd, res)

	entries := groupEntries(cat.Groups())
	if groupsJSON {
		return printJSON(cmd, entries)
	}

	out := cmd.OutOrStdout()
	for i, g := range entries {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s %s\n", TitleStyle.Render(g.Title), SubtitleStyle.Render("("+g.Name+")"))
		if g.Description != "" {
			fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render(g.Description))
		}
		if len(g.Generators) == 0 {
			fmt.Fprintln(out, "  (no generators)")
			continue
		}
		for _, m := range g.Generators {
			fmt.Fprintf(out, "  - %s  %s\n", m.DisplayName, SubtitleStyle.Render(m.ID))
		}
	}
	return nil
}

func groupEntries(reg *uigroup.Registry) []groupEntry {
	groups := reg.Groups()
	entries := make([]groupEntry, 0, len(groups))
	for _, g := range groups {
		e := groupEntry{
			Name:        g.Name,
			Title:       g.Title,
			Description: g.Description,
			Image:       g.Image(),
			Thumbnail:   g.Thumbnail(),
			Generators:  []memberEntry{},
		}
		for _, m := range g.Generators() {
			e.Generators = append(e.Generators, memberEntry{ID: memberID(m), DisplayName: m.DisplayName()})
		}
		entries = append(entries, e)
	}
	return entries
}

func memberID(m uigroup.Member) string {
	if t, ok := m.(*generator.Type); ok {
		return t.String()
	}
	return m.DisplayName()
}
