package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/kozaktomas/photo-selector/internal/export"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the selection summary to send to the photographer",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().Bool("copy", false, "Also copy the summary to the clipboard")
}

func runSummary(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	text := export.Summary(a.meta, a.ctrl.Catalog(), a.ctrl.Selections(), time.Now())
	fmt.Fprint(cmd.OutOrStdout(), text)

	if mustGetBool(cmd, "copy") {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Summary copied to the clipboard")
	}
	return nil
}
