package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kozaktomas/photo-selector/internal/gallery"
	"github.com/kozaktomas/photo-selector/internal/selection"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag <photo-number>",
	Short: "Mark a photo for one or more categories",
	Long: `Mark a photo by its 1-based number. Category flags are turned on;
--clear removes the existing categories first.

Marking a photo as discarded removes its other categories, and marking a
discarded photo for any other category removes the discard.

Examples:
  photo-selector tag 12 --print --social
  photo-selector tag 40 --discard
  photo-selector tag 7 --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)

	for _, c := range selection.Categories {
		tagCmd.Flags().Bool(c.String(), false, "Mark for "+strings.ToLower(c.Label()))
	}
	tagCmd.Flags().Bool("clear", false, "Remove the existing categories first")
}

func runTag(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid photo number %q", args[0])
	}

	var wanted []selection.Category
	for _, c := range selection.Categories {
		if mustGetBool(cmd, c.String()) {
			wanted = append(wanted, c)
		}
	}
	reset := mustGetBool(cmd, "clear")
	if len(wanted) == 0 && !reset {
		return errors.New("nothing to do: pass at least one category flag or --clear")
	}
	if len(wanted) > 1 && mustGetBool(cmd, selection.Discard.String()) {
		return errors.New("--discard cannot be combined with other categories")
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.ctrl.Open(ctx, number-1, gallery.ResolveAsk); err != nil {
		if errors.Is(err, gallery.ErrIndexOutOfRange) {
			return fmt.Errorf("photo %d does not exist (1-%d)", number, a.ctrl.Catalog().Size())
		}
		return err
	}

	var notices []gallery.Notice
	if reset {
		draft, _ := a.ctrl.Draft()
		for _, c := range draft.Categories() {
			if _, err := a.ctrl.ToggleCategory(c); err != nil {
				return err
			}
		}
	}
	for _, c := range wanted {
		if draft, _ := a.ctrl.Draft(); draft.Has(c) {
			continue
		}
		n, err := a.ctrl.ToggleCategory(c)
		if err != nil {
			return err
		}
		notices = append(notices, n...)
	}

	saved, err := a.ctrl.SaveDraft(ctx)
	if err != nil {
		return err
	}
	notices = append(notices, saved...)
	if _, err := a.ctrl.Close(ctx, gallery.ResolveDiscard); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	record := a.ctrl.Record(number - 1)
	if record.IsEmpty() {
		fmt.Fprintf(out, "Photo %d: unclassified\n", number)
	} else {
		labels := make([]string, 0, 4)
		for _, c := range record.Categories() {
			labels = append(labels, c.Label())
		}
		fmt.Fprintf(out, "Photo %d: %s\n", number, strings.Join(labels, ", "))
	}
	for _, n := range notices {
		fmt.Fprintf(out, "%s: %s\n", strings.ToUpper(string(n.Level)), n.Message)
	}
	return nil
}
