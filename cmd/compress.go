package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kozaktomas/photo-selector/internal/catalog"
	"github.com/kozaktomas/photo-selector/internal/constants"
	"github.com/kozaktomas/photo-selector/internal/fingerprint"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var compressCmd = &cobra.Command{
	Use:   "compress <src-dir> <dst-dir>",
	Short: "Downscale photos into numbered gallery previews",
	Long: `Re-encode every image of src-dir as a JPEG preview in dst-dir, scaled
down to --max-width. Outputs are numbered in source name order using
--pattern, which matches the catalog's 1-based photo numbers.

Example:
  photo-selector compress originals images --pattern foto%04d.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().Int("max-width", constants.MaxImageSize, "Maximum output width in pixels")
	compressCmd.Flags().Int("quality", constants.DefaultJPEGQuality, "JPEG quality (1-100)")
	compressCmd.Flags().String("pattern", "foto%04d.jpg", "Output file name pattern for the 1-based photo number")
	compressCmd.Flags().Int("concurrency", constants.DefaultConcurrency, "Number of parallel workers")
}

type compressResult struct {
	src, dst      string
	before, after int64
	err           error
}

func runCompress(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]
	maxWidth := mustGetInt(cmd, "max-width")
	quality := mustGetInt(cmd, "quality")
	pattern := mustGetString(cmd, "pattern")
	concurrency := mustGetWorkers(cmd, "concurrency")
	out := cmd.OutOrStdout()

	if quality < 1 || quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", quality)
	}

	paths, err := catalog.Scan(src)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found in %s", src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Fprintf(out, "Compressing %d images from %s to %s (max width %dpx, quality %d)\n\n",
		len(paths), src, dst, maxWidth, quality)

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Compressing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	results := make([]compressResult, len(paths))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			target := filepath.Join(dst, fmt.Sprintf(pattern, i+1))
			results[i] = compressFile(p, target, maxWidth, quality)
			bar.Add(1)
		}(i, path)
	}

	wg.Wait()
	fmt.Fprintln(out)

	var before, after int64
	var successCount, errorCount int
	for _, r := range results {
		if r.err != nil {
			errorCount++
			fmt.Fprintf(out, "Failed %s: %v\n", r.src, r.err)
			continue
		}
		successCount++
		before += r.before
		after += r.after
	}

	fmt.Fprintf(out, "\nCompleted: %d successful, %d errors\n", successCount, errorCount)
	if before > 0 {
		fmt.Fprintf(out, "Size: %.2f MB -> %.2f MB (%.1f%% smaller)\n",
			float64(before)/1e6, float64(after)/1e6, 100*(1-float64(after)/float64(before)))
	}
	return nil
}

func compressFile(src, dst string, maxWidth, quality int) compressResult {
	r := compressResult{src: src, dst: dst}
	data, err := os.ReadFile(src)
	if err != nil {
		r.err = err
		return r
	}
	preview, err := fingerprint.Compress(data, maxWidth, quality)
	if err != nil {
		r.err = err
		return r
	}
	if err := os.WriteFile(dst, preview.Data, 0o644); err != nil {
		r.err = err
		return r
	}
	r.before, r.after = int64(len(data)), int64(len(preview.Data))
	return r
}
