package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kozaktomas/photo-selector/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and classify photos in the terminal",
	Long: `Open the gallery in an interactive terminal UI.

Keys in the grid: arrows move, enter opens, a/1/2/3/4/u filter,
X clears every selection, c copies the summary, x writes the JSON export.
Keys on a photo: e/p/s/d toggle categories, enter saves, left/right
navigate, esc closes.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().String("log-file", "", "Write logs to this file instead of discarding them")
	tuiCmd.Flags().String("export-dir", ".", "Directory for JSON exports")
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Logs would corrupt the screen, so they go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := mustGetString(cmd, "log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	a, err := newApp(ctx, logOut)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(ctx, a.ctrl, tui.Options{
		Meta:      a.meta,
		ExportDir: mustGetString(cmd, "export-dir"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
