package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every selection",
	Long: `Delete every selection and persist the empty state.

This cannot be undone; export the selections first if you may need them.

Example:
  photo-selector clear --yes`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}

func confirmAction(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	reader := bufio.NewReader(in)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	count := len(a.ctrl.Selections())
	if count == 0 {
		fmt.Fprintln(out, "There are no selections to delete.")
		return nil
	}

	confirmed := mustGetBool(cmd, "yes")
	if !confirmed {
		prompt := fmt.Sprintf("Delete ALL %d selections? This cannot be undone. [y/N]: ", count)
		confirmed = confirmAction(cmd.InOrStdin(), out, prompt)
	}
	if !confirmed {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	result := a.ctrl.ClearAll(ctx, true)
	for _, n := range result.Notices {
		fmt.Fprintf(out, "%s: %s\n", strings.ToUpper(string(n.Level)), n.Message)
	}
	if len(result.Notices) > 0 {
		return fmt.Errorf("selections cleared in memory but not persisted")
	}
	fmt.Fprintf(out, "Deleted %d selections.\n", count)
	return nil
}
