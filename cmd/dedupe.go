package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/constants"
	"github.com/kozaktomas/photo-selector/internal/fingerprint"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <dir>",
	Short: "Find duplicate photos in a directory",
	Long: `Find byte-identical photos (MD5) and visually near-identical photos
(perceptual and difference hashes within --threshold bits).

In every group the first file in name order is kept. With --delete the
other files are removed; run without it first to review the groups.

Examples:
  photo-selector dedupe images
  photo-selector dedupe images --exact-only --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runDedupe,
}

func init() {
	rootCmd.AddCommand(dedupeCmd)

	dedupeCmd.Flags().Int("threshold", constants.DefaultDuplicateThreshold, "Max hash distance in bits for near-duplicates")
	dedupeCmd.Flags().Bool("exact-only", false, "Only report byte-identical files")
	dedupeCmd.Flags().Bool("delete", false, "Delete the duplicates")
	dedupeCmd.Flags().Int("concurrency", constants.DefaultConcurrency, "Number of parallel workers")
}

func runDedupe(cmd *cobra.Command, args []string) error {
	dir := args[0]
	threshold := mustGetInt(cmd, "threshold")
	if mustGetBool(cmd, "exact-only") {
		threshold = -1
	}
	concurrency := mustGetWorkers(cmd, "concurrency")
	out := cmd.OutOrStdout()

	paths, err := catalog.Scan(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(out, "No images found in %s\n", dir)
		return nil
	}
	fmt.Fprintf(out, "Analyzing %d images in %s\n\n", len(paths), dir)

	files, errorCount := analyzeFiles(paths, concurrency)
	groups := fingerprint.FindDuplicates(files, threshold)

	fmt.Fprintln(out)
	if len(groups) == 0 {
		fmt.Fprintln(out, "No duplicates found")
	}

	duplicates := 0
	for i, g := range groups {
		fmt.Fprintf(out, "Group %d (%s", i+1, g.Kind)
		if g.Kind == fingerprint.MatchSimilar {
			fmt.Fprintf(out, ", distance %d", g.Distance)
		}
		fmt.Fprintf(out, ")\n  keep    %s\n", g.Keep)
		for _, d := range g.Duplicates {
			fmt.Fprintf(out, "  remove  %s\n", d)
		}
		duplicates += len(g.Duplicates)
	}

	deleted := 0
	if mustGetBool(cmd, "delete") {
		for _, g := range groups {
			for _, d := range g.Duplicates {
				if err := os.Remove(d); err != nil {
					fmt.Fprintf(out, "Failed to delete %s: %v\n", d, err)
					continue
				}
				deleted++
			}
		}
	}

	fmt.Fprintf(out, "\nScanned: %d, unreadable: %d, duplicates: %d, deleted: %d\n",
		len(paths), errorCount, duplicates, deleted)
	return nil
}

// analyzeFiles fingerprints paths with a bounded worker pool. Unreadable
// files are counted and skipped.
func analyzeFiles(paths []string, concurrency int) ([]fingerprint.File, int) {
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Hashing images"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var (
		mu         sync.Mutex
		files      = make([]fingerprint.File, 0, len(paths))
		errorCount int
	)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, path := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			f, err := fingerprint.Analyze(p)

			mu.Lock()
			if err != nil {
				errorCount++
			} else {
				files = append(files, f)
			}
			mu.Unlock()
			bar.Add(1)
		}(path)
	}

	wg.Wait()
	return files, errorCount
}
