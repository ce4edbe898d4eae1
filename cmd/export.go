package cmd

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/renameio"
	"github.com/kozaktomas/photo-selector/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the selections",
	Long: `Export the selections as a JSON report, a text summary or a parquet table.

Without --output the file is written to the current directory under its
download name, e.g. selection-xv-anos-alexa-2026-10-18.json. Use
--output - to write to stdout.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "json", "Export format: json, text or parquet")
	exportCmd.Flags().StringP("output", "o", "", "Output path, or - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := mustGetString(cmd, "format")
	output := mustGetString(cmd, "output")
	if _, ok := export.Formats[format]; !ok {
		names := make([]string, 0, len(export.Formats))
		for name := range export.Formats {
			names = append(names, name)
		}
		slices.Sort(names)
		return fmt.Errorf("unsupported format %q (available: %v)", format, names)
	}

	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	cat, selections, now := a.ctrl.Catalog(), a.ctrl.Selections(), time.Now()

	switch output {
	case "":
		path, err := export.WriteFile(".", format, a.meta, cat, selections, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d photos to %s\n", len(selections), path)
	case "-":
		return export.Render(cmd.OutOrStdout(), format, a.meta, cat, selections, now)
	default:
		var buf bytes.Buffer
		if err := export.Render(&buf, format, a.meta, cat, selections, now); err != nil {
			return err
		}
		if err := renameio.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d photos to %s\n", len(selections), output)
	}
	return nil
}
