package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kozaktomas/photo-selector/internal/selection"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many photos are in each category",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	printStats(cmd.OutOrStdout(), a)
	return nil
}

func printStats(out io.Writer, a *app) {
	stats := a.ctrl.Stats()
	limits := a.ctrl.Limits()

	fmt.Fprintf(out, "Event: %s\n", a.meta.EventName)
	fmt.Fprintf(out, "  %-14s %d\n", "Total photos:", a.ctrl.Catalog().Size())
	for _, c := range selection.Categories {
		n := stats.Count(c)
		limit, ok := limits.Limit(c)
		switch {
		case ok && n > limit:
			fmt.Fprintf(out, "  %-14s %d / %d  (over the recommended limit)\n", c.Label()+":", n, limit)
		case ok:
			fmt.Fprintf(out, "  %-14s %d / %d\n", c.Label()+":", n, limit)
		default:
			fmt.Fprintf(out, "  %-14s %d\n", c.Label()+":", n)
		}
	}
	fmt.Fprintf(out, "  %-14s %d\n", "Unclassified:", stats.Unclassified)
}
