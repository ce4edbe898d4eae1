package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kozaktomas/photo-selector/internal/selection"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List photos and their categories",
	Long: `List the photos of the event with their categories.

Filters: all, enlargement, print, social, discard, unclassified.

Example:
  photo-selector catalog --filter print`,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().String("filter", "all", "Only list photos matching this filter")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	filter, err := selection.ParseFilter(mustGetString(cmd, "filter"))
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	cat := a.ctrl.Catalog()
	selections := a.ctrl.Selections()
	visible := selection.VisibleIndices(filter, selections, cat.Size())

	for _, i := range visible {
		p, _ := cat.Photo(i)
		var labels []string
		for _, c := range selections.Get(i).Categories() {
			labels = append(labels, c.String())
		}
		fmt.Fprintf(out, "%4d  %-28s %s\n", p.Number(), p.Path, strings.Join(labels, ", "))
	}
	fmt.Fprintf(out, "\n%s: %d of %d photos\n", filter.Label(), len(visible), cat.Size())
	return nil
}
