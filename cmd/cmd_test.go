package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupEnv points every command at a fresh file store with a 10 photo catalog.
func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EVENT_FILE", "")
	t.Setenv("TOTAL_PHOTOS", "10")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("STORAGE_PATH", filepath.Join(t.TempDir(), "selections.json"))
	t.Setenv("STORAGE_KEY", "selections")
}

// resetFlags restores flag defaults, since commands are package globals.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTagAndStats(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "", "tag", "3", "--print", "--social")
	if err != nil {
		t.Fatalf("tag failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Photo 3: Print, Social media") {
		t.Errorf("unexpected tag output:\n%s", out)
	}

	out, err = run(t, "", "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, want := range []string{"Total photos:  10", "1 / 80", "Unclassified:  9"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestTagDiscardReplacesCategories(t *testing.T) {
	setupEnv(t)

	if _, err := run(t, "", "tag", "1", "--print"); err != nil {
		t.Fatalf("tag failed: %v", err)
	}
	out, err := run(t, "", "tag", "1", "--discard")
	if err != nil {
		t.Fatalf("tag failed: %v", err)
	}
	if !strings.Contains(out, "Photo 1: Discarded") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "", "tag", "1", "--clear")
	if err != nil {
		t.Fatalf("tag --clear failed: %v", err)
	}
	if !strings.Contains(out, "Photo 1: unclassified") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestTagErrors(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no flags", []string{"tag", "2"}},
		{"not a number", []string{"tag", "two", "--print"}},
		{"out of range", []string{"tag", "11", "--print"}},
		{"zero", []string{"tag", "0", "--print"}},
		{"discard with others", []string{"tag", "2", "--discard", "--print"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, "", tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCatalogFilter(t *testing.T) {
	setupEnv(t)

	if _, err := run(t, "", "tag", "4", "--enlargement"); err != nil {
		t.Fatalf("tag failed: %v", err)
	}
	out, err := run(t, "", "catalog", "--filter", "enlargement")
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}
	if !strings.Contains(out, "foto0004.webp") || strings.Contains(out, "foto0005.webp") {
		t.Errorf("unexpected catalog output:\n%s", out)
	}
	if !strings.Contains(out, "1 of 10 photos") {
		t.Errorf("missing footer:\n%s", out)
	}

	if _, err := run(t, "", "catalog", "--filter", "favorites"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestExportToStdout(t *testing.T) {
	setupEnv(t)

	if _, err := run(t, "", "tag", "2", "--print"); err != nil {
		t.Fatalf("tag failed: %v", err)
	}
	out, err := run(t, "", "export", "--format", "json", "--output", "-")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var report struct {
		TotalPhotos int `json:"total_photos"`
		Selections  []struct {
			PhotoNumber int  `json:"photo_number"`
			Print       bool `json:"print"`
		} `json:"selections"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("export is not JSON: %v\n%s", err, out)
	}
	if report.TotalPhotos != 10 || len(report.Selections) != 1 || report.Selections[0].PhotoNumber != 2 {
		t.Errorf("unexpected report %+v", report)
	}

	if _, err := run(t, "", "export", "--format", "pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestClearConfirmation(t *testing.T) {
	setupEnv(t)

	if _, err := run(t, "", "tag", "5", "--social"); err != nil {
		t.Fatalf("tag failed: %v", err)
	}

	out, err := run(t, "n\n", "clear")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "Cancelled.") {
		t.Errorf("expected cancellation:\n%s", out)
	}

	out, err = run(t, "y\n", "clear")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "Deleted 1 selections.") {
		t.Errorf("expected deletion:\n%s", out)
	}

	out, err = run(t, "", "clear", "--yes")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "no selections") {
		t.Errorf("expected nothing to delete:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "photo-selector dev") {
		t.Errorf("unexpected version output:\n%s", out)
	}
}
